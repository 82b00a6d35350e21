package idx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewProducesValidIDs(t *testing.T) {
	t.Parallel()

	a := New()
	b := New()

	require.False(t, a.IsZero())
	require.False(t, b.IsZero())
	require.NotEqual(t, a, b)

	// Monotonic source: IDs minted later never sort before earlier ones.
	require.LessOrEqual(t, a.String(), b.String())
}

func TestParse(t *testing.T) {
	t.Parallel()

	id := New()

	parsed, err := Parse(id.String())
	require.NoError(t, err)
	require.Equal(t, id, parsed)

	_, err = Parse("")
	require.ErrorIs(t, err, ErrInvalid)

	_, err = Parse("not-a-ulid")
	require.ErrorIs(t, err, ErrInvalid)
}

func TestTimeRoundTrip(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	id := NewAt(at)

	require.WithinDuration(t, at, id.Time(), time.Millisecond)
}
