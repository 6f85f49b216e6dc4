package apierrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnsupportedKindError(t *testing.T) {
	t.Run("message with all fields", func(t *testing.T) {
		err := &UnsupportedKindError{
			Location:    Location{Method: "get", Path: "/users", Direction: "input"},
			Kind:        "custom",
			Description: "user id",
		}
		assert.Equal(t, "unsupported schema kind custom at get /users (input): user id", err.Error())
	})

	t.Run("minimal message", func(t *testing.T) {
		err := &UnsupportedKindError{}
		assert.Equal(t, "unsupported schema kind", err.Error())
	})

	t.Run("matches sentinels", func(t *testing.T) {
		err := fmt.Errorf("wrapped: %w", &UnsupportedKindError{Kind: "custom"})
		assert.ErrorIs(t, err, ErrUnsupportedKind)
		assert.ErrorIs(t, err, ErrDocumentation)
		assert.NotErrorIs(t, err, ErrDirection)

		var target *UnsupportedKindError
		require.ErrorAs(t, err, &target)
		assert.Equal(t, "custom", target.Kind)
	})
}

func TestDirectionError(t *testing.T) {
	err := &DirectionError{
		Location: Location{Method: "post", Path: "/avatar", Direction: "output"},
		Kind:     "upload",
		Message:  "use upload only within input schemas",
	}

	assert.Equal(t, "direction constraint violation for upload at post /avatar (output): use upload only within input schemas", err.Error())
	assert.True(t, errors.Is(err, ErrDirection))
	assert.True(t, errors.Is(err, ErrDocumentation))
	assert.False(t, errors.Is(err, ErrIllegalTransform))
}

func TestTransformError(t *testing.T) {
	t.Run("with location", func(t *testing.T) {
		err := &TransformError{
			Location: Location{Method: "get", Path: "/", Direction: "input"},
			Message:  "transformations are not allowed on the top level",
		}
		assert.Equal(t, "illegal transformation at get / (input): transformations are not allowed on the top level", err.Error())
		assert.ErrorIs(t, err, ErrIllegalTransform)
		assert.ErrorIs(t, err, ErrDocumentation)
	})

	t.Run("without location", func(t *testing.T) {
		err := &TransformError{}
		assert.Equal(t, "illegal transformation", err.Error())
	})
}

func TestConfigError(t *testing.T) {
	err := &ConfigError{Option: "Version", Value: "2.0", Message: "unsupported"}
	assert.Equal(t, "configuration error for Version (value: 2.0): unsupported", err.Error())
	assert.ErrorIs(t, err, ErrConfig)
	assert.ErrorIs(t, err, ErrDocumentation)
}

func TestLocationString(t *testing.T) {
	assert.Empty(t, Location{}.String())
	assert.Equal(t, " (output)", Location{Direction: "output"}.String())
	assert.Equal(t, " at get /a", Location{Method: "get", Path: "/a"}.String())
}
