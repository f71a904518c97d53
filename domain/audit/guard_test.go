package audit_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fixora/auditguard/domain/audit"
	domainerr "github.com/fixora/auditguard/domain/error"
	"github.com/fixora/auditguard/infrastructure/sink"
)

type failingSink struct {
	err error
}

func (s failingSink) AppendLine(string, string) error {
	return s.err
}

type productGuards struct {
	class    *audit.Class
	name     *audit.FieldGuard
	price    *audit.FieldGuard
	quantity *audit.FieldGuard
}

func defineProduct(t *testing.T, s audit.Sink) productGuards {
	t.Helper()
	g := productGuards{
		name:     audit.NewTextGuard(audit.TextRules{MinLength: 3, MaxLength: 50}),
		price:    audit.NewNumberGuard(audit.NumberRules{MinValue: 1, MaxValue: 10000000000000}),
		quantity: audit.NewCountGuard(audit.CountRules{MinCount: 1, MaxCount: 100000000000}),
	}
	class, err := audit.Define("Product", s,
		audit.Declare("name", g.name),
		audit.Declare("price", g.price),
		audit.Declare("quantity", g.quantity),
	)
	require.NoError(t, err)
	g.class = class
	return g
}

func TestDefine_BindsFieldKeys(t *testing.T) {
	g := defineProduct(t, sink.NewMemorySink())

	assert.Equal(t, "_name", g.name.FieldKey())
	assert.Equal(t, "_price", g.price.FieldKey())
	assert.Equal(t, "_quantity", g.quantity.FieldKey())
	assert.Equal(t, "price", g.price.Name())
	assert.Equal(t, audit.KindNumber, g.price.Kind())

	guard, ok := g.class.Field("quantity")
	require.True(t, ok)
	assert.Same(t, g.quantity, guard)

	fields := g.class.Fields()
	require.Len(t, fields, 3)
	assert.Same(t, g.name, fields[0])
	assert.Same(t, g.price, fields[1])
	assert.Same(t, g.quantity, fields[2])
}

func TestDefine_Errors(t *testing.T) {
	mem := sink.NewMemorySink()

	t.Run("EmptyName", func(t *testing.T) {
		_, err := audit.Define("", mem)
		assert.ErrorIs(t, err, audit.ErrEmptyClassName)
	})

	t.Run("NilSink", func(t *testing.T) {
		_, err := audit.Define("Product", nil)
		assert.ErrorIs(t, err, audit.ErrNilSink)
	})

	t.Run("DuplicateField", func(t *testing.T) {
		_, err := audit.Define("Product", mem,
			audit.Declare("name", audit.NewTextGuard(audit.TextRules{MaxLength: 5})),
			audit.Declare("name", audit.NewTextGuard(audit.TextRules{MaxLength: 5})),
		)
		assert.ErrorIs(t, err, audit.ErrDuplicateField)
	})

	t.Run("GuardBoundTwice", func(t *testing.T) {
		shared := audit.NewTextGuard(audit.TextRules{MaxLength: 5})
		_, err := audit.Define("First", mem, audit.Declare("name", shared))
		require.NoError(t, err)

		_, err = audit.Define("Second", mem, audit.Declare("title", shared))
		assert.ErrorIs(t, err, audit.ErrGuardBound)
		assert.Equal(t, "_name", shared.FieldKey())
	})

	t.Run("MustDefinePanics", func(t *testing.T) {
		assert.Panics(t, func() { audit.MustDefine("", mem) })
	})
}

func TestTextRules(t *testing.T) {
	g := defineProduct(t, sink.NewMemorySink())

	tests := []struct {
		name    string
		value   any
		wantErr string
	}{
		{"Within", "Laptop", ""},
		{"MinBoundary", "abc", ""},
		{"MaxBoundary", strings.Repeat("a", 50), ""},
		{"Multibyte", "héé", ""},
		{"TooShort", "L", "Name must be between 3 and 50 characters long"},
		{"TooLong", strings.Repeat("a", 51), "Name must be between 3 and 50 characters long"},
		{"NotText", 42, "Name must be a string"},
		{"Nil", nil, "Name must be a string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := g.name.Validate(tt.value)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, domainerr.IsValidationError(err))
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

type money float64

func TestNumberRules(t *testing.T) {
	g := defineProduct(t, sink.NewMemorySink())

	tests := []struct {
		name    string
		value   any
		wantErr string
	}{
		{"Int", 99, ""},
		{"Float", 99.5, ""},
		{"Uint8", uint8(7), ""},
		{"NamedFloat", money(12), ""},
		{"MinBoundary", 1, ""},
		{"MaxBoundary", 10000000000000.0, ""},
		{"BelowMin", 0, "Price must be between 1 and 10000000000000, given price: 0"},
		{"AboveMax", 10000000000001.0, "Price must be between 1 and 10000000000000, given price: 10000000000001"},
		{"NaN", math.NaN(), "Price must be between 1 and 10000000000000, given price: NaN"},
		{"NotNumber", "99", "Price must be a number"},
		{"Bool", true, "Price must be a number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := g.price.Validate(tt.value)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, domainerr.IsValidationError(err))
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestNumberRules_IntegersAboveFloatPrecision(t *testing.T) {
	// 2^53 is the last integer float64 holds exactly
	const limit = 9007199254740992

	mem := sink.NewMemorySink()
	guard := audit.NewNumberGuard(audit.NumberRules{MinValue: 0, MaxValue: limit})
	_, err := audit.Define("Ledger", mem, audit.Declare("balance", guard))
	require.NoError(t, err)

	assert.NoError(t, guard.Validate(int64(limit)))
	assert.NoError(t, guard.Validate(uint64(limit)))

	rec := audit.NewRecord("Ledger")
	rec.SetObjectName("Main")
	require.NoError(t, guard.Write(rec, int64(limit)))

	err = guard.Write(rec, int64(limit+1))
	require.Error(t, err)
	assert.Equal(t, "Balance must be between 0 and 9007199254740992, given balance: 9007199254740993", err.Error())
	assert.Error(t, guard.Validate(uint64(limit+1)))
	assert.Error(t, guard.Validate(int64(math.MaxInt64)))
	assert.Error(t, guard.Validate(uint64(math.MaxUint64)))

	stored, ok := audit.ReadAs[int64](guard, rec)
	require.True(t, ok)
	assert.Equal(t, int64(limit), stored)
	assert.Len(t, mem.Entries("Ledger"), 1)
}

func TestCountRules(t *testing.T) {
	g := defineProduct(t, sink.NewMemorySink())

	tests := []struct {
		name    string
		value   any
		wantErr string
	}{
		{"Int", 10, ""},
		{"Int64", int64(10), ""},
		{"Uint", uint(10), ""},
		{"MinBoundary", 1, ""},
		{"MaxBoundary", int64(100000000000), ""},
		{"Zero", 0, "Quantity must be between 1 and 100000000000, given quantity: 0"},
		{"AboveMax", int64(100000000001), "Quantity must be between 1 and 100000000000, given quantity: 100000000001"},
		{"Negative", -1, "Quantity must be a non-negative integer"},
		{"WholeFloat", 2.0, "Quantity must be a non-negative integer"},
		{"Text", "10", "Quantity must be a non-negative integer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := g.quantity.Validate(tt.value)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, domainerr.IsValidationError(err))
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}

	t.Run("ZeroAllowedWhenMinIsZero", func(t *testing.T) {
		stock := audit.NewCountGuard(audit.CountRules{MinCount: 0, MaxCount: 5})
		audit.MustDefine("Bin", sink.NewMemorySink(), audit.Declare("stock", stock))
		assert.NoError(t, stock.Validate(0))
		assert.Error(t, stock.Validate(-1))
	})
}

func TestFieldGuard_Write(t *testing.T) {
	mem := sink.NewMemorySink()
	g := defineProduct(t, mem)
	rec := g.class.NewRecord("Product1")

	require.NoError(t, g.price.Write(rec, 99))
	require.NoError(t, g.price.Write(rec, 1200))

	assert.Equal(t, 1200, g.price.Read(rec))
	assert.Equal(t, []string{
		"Object 'Product1' of class Product changed attribute 'price' to '99'",
		"Object 'Product1' of class Product changed attribute 'price' to '1200'",
	}, mem.Entries("Product"))

	stored, ok := rec.Load("_price")
	require.True(t, ok)
	assert.Equal(t, 1200, stored)
}

func TestFieldGuard_WriteRejectedKeepsPriorValue(t *testing.T) {
	mem := sink.NewMemorySink()
	g := defineProduct(t, mem)
	rec := g.class.NewRecord("Product1")

	require.NoError(t, g.name.Write(rec, "Laptop"))
	before := len(mem.Entries("Product"))

	err := g.name.Write(rec, "L")
	require.Error(t, err)
	assert.True(t, domainerr.IsValidationError(err))
	assert.Contains(t, err.Error(), "3")
	assert.Contains(t, err.Error(), "50")

	assert.Equal(t, "Laptop", g.name.Read(rec))
	assert.Len(t, mem.Entries("Product"), before)
}

func TestFieldGuard_WriteWithoutObjectName(t *testing.T) {
	mem := sink.NewMemorySink()
	g := defineProduct(t, mem)
	rec := audit.NewRecord("Product")

	require.NoError(t, g.quantity.Write(rec, 3))
	assert.Equal(t, []string{
		"Object 'Unknown Object' of class Product changed attribute 'quantity' to '3'",
	}, mem.Entries("Product"))
}

func TestFieldGuard_WriteSinkFailure(t *testing.T) {
	errDiskFull := errors.New("disk full")
	g := defineProduct(t, failingSink{err: errDiskFull})
	rec := g.class.NewRecord("Product1")

	err := g.price.Write(rec, 99)
	require.Error(t, err)
	assert.ErrorIs(t, err, errDiskFull)
	assert.False(t, domainerr.IsValidationError(err))

	_, stored := rec.Load("_price")
	assert.False(t, stored)
}

func TestFieldGuard_Unbound(t *testing.T) {
	guard := audit.NewTextGuard(audit.TextRules{MinLength: 1, MaxLength: 3})
	err := guard.Write(audit.NewRecord("Product"), "abc")
	assert.ErrorIs(t, err, audit.ErrUnboundGuard)
	assert.Equal(t, "Value must be a string", guard.Validate(1).Error())
}

func TestFieldGuard_ReadOnClassReturnsGuard(t *testing.T) {
	g := defineProduct(t, sink.NewMemorySink())
	assert.Same(t, g.price, g.price.Read(nil))
}

func TestFieldGuard_SharedAcrossObjects(t *testing.T) {
	g := defineProduct(t, sink.NewMemorySink())
	first := g.class.NewRecord("First")
	second := g.class.NewRecord("Second")

	require.NoError(t, g.name.Write(first, "Laptop"))
	require.NoError(t, g.name.Write(second, "Monitor"))

	assert.Equal(t, "Laptop", g.name.Read(first))
	assert.Equal(t, "Monitor", g.name.Read(second))

	name, ok := audit.ReadAs[string](g.name, first)
	require.True(t, ok)
	assert.Equal(t, "Laptop", name)

	_, ok = audit.ReadAs[float64](g.name, first)
	assert.False(t, ok)
	_, ok = audit.ReadAs[float64](g.price, first)
	assert.False(t, ok)
}

func TestClass_LogInitialized(t *testing.T) {
	mem := sink.NewMemorySink()
	g := defineProduct(t, mem)
	rec := g.class.NewRecord("Product1")
	require.NoError(t, g.name.Write(rec, "Laptop"))
	require.NoError(t, g.price.Write(rec, 99.0))
	require.NoError(t, g.quantity.Write(rec, 10))
	mem.Reset()

	require.NoError(t, g.class.LogInitialized(rec))

	assert.Equal(t, []string{
		"Object 'Product1' of class Product was initialized with attributes:",
		"_obj_name: Product1",
		"_name: Laptop",
		"_price: 99",
		"_quantity: 10",
	}, mem.Lines("Product"))
	assert.Len(t, mem.Entries("Product"), 1)
}
