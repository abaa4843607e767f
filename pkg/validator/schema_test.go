package validator_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/validator"
)

func TestRuleSet_Immutable(t *testing.T) {
	t.Parallel()

	base := validator.Rules().Required().IsString()
	email := base.Regex(validator.PatternEmail)
	name := base.Length(2, 50)

	assert.Equal(t, 2, base.Len())
	require.Len(t, email.List(), 3)
	require.Len(t, name.List(), 3)
	assert.Equal(t, validator.KindRegex, email.List()[2].Kind())
	assert.Equal(t, validator.KindLength, name.List()[2].Kind())

	list := email.List()
	list[0] = validator.Date()
	assert.Equal(t, validator.KindRequired, email.List()[0].Kind(), "List returns a copy")
}

func TestRuleSet_Kinds(t *testing.T) {
	t.Parallel()

	v := validator.New()
	set := validator.Rules().
		Required().
		IsString().
		Integer().
		Length(1, 2).
		Regex(validator.PatternURL).
		In("a").
		Min(1).
		Max(2).
		Date().
		Distinct().
		Custom("c", "m", func(context.Context) (bool, error) { return true, nil }).
		Object(v, nil).
		Array(v, validator.Rules()).
		Exists("e").
		Unique("e", nil)

	var kinds []validator.RuleKind
	for _, r := range set.List() {
		kinds = append(kinds, r.Kind())
	}
	assert.Equal(t, []validator.RuleKind{
		validator.KindRequired, validator.KindString, validator.KindInteger, validator.KindLength,
		validator.KindRegex, validator.KindIn, validator.KindMin, validator.KindMax, validator.KindDate,
		validator.KindDistinct, validator.KindCustom, validator.KindObject, validator.KindArray,
		validator.KindExists, validator.KindUnique,
	}, kinds)
}

func TestSchema(t *testing.T) {
	t.Parallel()

	t.Run("keeps declaration order and replaces duplicates", func(t *testing.T) {
		s := validator.NewSchema().
			Field("b", validator.Rules().Required()).
			Field("a", validator.Rules().Required()).
			Field("b", validator.Rules().IsString().Length(1, 2))

		assert.Equal(t, []string{"b", "a"}, s.Paths())
		assert.Len(t, s[0].Rules, 2)
	})

	t.Run("builders do not share state", func(t *testing.T) {
		base := validator.NewSchema().Field("a", validator.Rules().Required())
		withB := base.Field("b", validator.Rules().Required())
		withC := base.Field("c", validator.Rules().Required())

		assert.Equal(t, []string{"a"}, base.Paths())
		assert.Equal(t, []string{"a", "b"}, withB.Paths())
		assert.Equal(t, []string{"a", "c"}, withC.Paths())
	})

	t.Run("prefix", func(t *testing.T) {
		s := validator.NewSchema().Field("id", validator.Rules().Required()).Prefix("items.0")
		assert.Equal(t, []string{"items.0.id"}, s.Paths())
	})
}

func TestDataContext(t *testing.T) {
	t.Parallel()

	t.Run("lazy source loads once across concurrent readers", func(t *testing.T) {
		var loads atomic.Int32
		data := validator.DataContext{
			"products": validator.Lazy(func(context.Context) ([]validator.Record, error) {
				loads.Add(1)
				return []validator.Record{{"id": "p1"}}, nil
			}),
		}

		var wg sync.WaitGroup
		for range 10 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				records, err := data.Records(context.Background(), "products")
				assert.NoError(t, err)
				assert.Len(t, records, 1)
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), loads.Load())
	})

	t.Run("lazy source is not loaded when no rule reads it", func(t *testing.T) {
		var loads atomic.Int32
		data := validator.DataContext{
			"customers": validator.Lazy(func(context.Context) ([]validator.Record, error) {
				loads.Add(1)
				return nil, nil
			}),
		}
		schema := validator.NewSchema().
			Field("email", validator.Rules().Required().Exists("customers"))

		err := validator.New().Validate(context.Background(), schema, validator.Model{}, data)
		require.Error(t, err)
		assert.Equal(t, int32(0), loads.Load())
	})

	t.Run("lazy error is memoized", func(t *testing.T) {
		boom := errors.New("boom")
		var loads atomic.Int32
		src := validator.Lazy(func(context.Context) ([]validator.Record, error) {
			loads.Add(1)
			return nil, boom
		})

		_, err1 := src.Records(context.Background())
		_, err2 := src.Records(context.Background())
		assert.ErrorIs(t, err1, boom)
		assert.ErrorIs(t, err2, boom)
		assert.Equal(t, int32(1), loads.Load())
	})

	t.Run("cancelled load is retried", func(t *testing.T) {
		var loads atomic.Int32
		src := validator.Lazy(func(ctx context.Context) ([]validator.Record, error) {
			loads.Add(1)
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return []validator.Record{{"id": "a"}}, nil
		})

		cancelled, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := src.Records(cancelled)
		assert.ErrorIs(t, err, context.Canceled)

		recs, err := src.Records(context.Background())
		require.NoError(t, err)
		assert.Len(t, recs, 1)

		_, err = src.Records(cancelled)
		require.NoError(t, err)
		assert.Equal(t, int32(2), loads.Load())
	})

	t.Run("missing entity", func(t *testing.T) {
		var data validator.DataContext
		_, err := data.Records(context.Background(), "customers")
		assert.ErrorIs(t, err, validator.ErrUnknownDataEntity)
	})
}

func TestValidationErrors(t *testing.T) {
	t.Parallel()

	var errs validator.ValidationErrors
	assert.Equal(t, "validation failed", errs.Error())

	errs.Add(validator.ValidationError{Field: "email", Rule: validator.KindRequired, Message: "This field is required"})
	errs.Add(validator.ValidationError{Field: "items.0.id", Rule: validator.KindExists, Message: "This value was not found"})

	assert.Equal(t, "validation failed: email: This field is required; items.0.id: This value was not found", errs.Error())
	assert.True(t, errs.Has("email"))
	assert.False(t, errs.Has("name"))

	first, ok := errs.Get("items.0.id")
	require.True(t, ok)
	assert.Equal(t, validator.KindExists, first.Rule)

	assert.Equal(t, []string{"This field is required"}, errs.Messages("email"))
	assert.Equal(t, map[string][]string{
		"email":      {"This field is required"},
		"items.0.id": {"This value was not found"},
	}, errs.Map())

	wrapped := errors.Join(errors.New("create customer"), errs)
	assert.ErrorIs(t, wrapped, validator.ErrValidationFailed)
	assert.Equal(t, errs, validator.ExtractValidationErrors(wrapped))
	assert.Nil(t, validator.ExtractValidationErrors(errors.New("other")))
	assert.Nil(t, validator.ExtractValidationErrors(nil))
}

func TestAbsentValuesPassEveryRuleButRequired(t *testing.T) {
	t.Parallel()

	v := validator.New()
	never := func(context.Context) (bool, error) { return false, nil }
	rules := []validator.Rule{
		validator.String(),
		validator.Integer(),
		validator.Length(1, 1),
		validator.Regex(validator.PatternEmail),
		validator.In("x"),
		validator.Min(10),
		validator.Max(-10),
		validator.Date(),
		validator.Distinct(),
		validator.Custom("c", "m", never),
		validator.Object(v, validator.NewSchema().Field("x", validator.Rules().Required())),
		validator.Array(v, validator.Required()),
		validator.Exists("missing"),
		validator.Unique("missing", nil),
	}

	for _, rule := range rules {
		t.Run(string(rule.Kind()), func(t *testing.T) {
			assert.NoError(t, rule.Validate(context.Background(), "field", validator.Model{}, nil))
			assert.NoError(t, rule.Validate(context.Background(), "field", validator.Model{"field": nil}, nil))
		})
	}
}

func TestReject(t *testing.T) {
	t.Parallel()

	err := validator.Reject("email", validator.KindUnique, "This value is already in use", nil)
	assert.ErrorIs(t, err, validator.ErrValidationFailed)

	failures := validator.ExtractValidationErrors(err)
	require.Len(t, failures, 1)
	assert.Equal(t, "email", failures[0].Field)
}
