package idx_test

import (
	"testing"

	"github.com/lanternware/lantern-go/pkg/idx"

	"github.com/stretchr/testify/require"
)

func TestNewAndParse(t *testing.T) {
	id := idx.New()
	require.NotEmpty(t, id.String())

	parsed, err := idx.Parse(id.String())
	require.NoError(t, err)
	require.Equal(t, id, parsed)
	require.False(t, id.IsZero())
}

func TestParseInvalid(t *testing.T) {
	_, err := idx.Parse("")
	require.ErrorIs(t, err, idx.ErrInvalid)

	_, err = idx.Parse("not-a-ulid")
	require.ErrorIs(t, err, idx.ErrInvalid)
}

func TestTimeExtraction(t *testing.T) {
	id := idx.New()

	// Resolution is milliseconds, anything recent is good enough here
	require.False(t, id.Time().IsZero())
	require.True(t, idx.Zero.Time().IsZero())
}
