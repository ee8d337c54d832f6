package tokenstore_test

import (
	"sync"
	"testing"

	"github.com/lanternware/lantern-go/pkg/tokenstore"

	"github.com/stretchr/testify/require"
)

func TestMemoryRoundTrip(t *testing.T) {
	t.Parallel()

	store := tokenstore.NewMemory()

	cred, err := store.Get(t.Context())
	require.NoError(t, err)
	require.True(t, cred.IsZero())

	want := tokenstore.Credential{AccessToken: "access-1", RefreshToken: "refresh-1"}
	require.NoError(t, store.Set(t.Context(), want))

	got, err := store.Get(t.Context())
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestMemoryClearIdempotent(t *testing.T) {
	t.Parallel()

	store := tokenstore.NewMemory()
	require.NoError(t, store.Set(t.Context(), tokenstore.Credential{AccessToken: "a", RefreshToken: "r"}))

	require.NoError(t, store.Clear(t.Context()))
	require.NoError(t, store.Clear(t.Context()))

	cred, err := store.Get(t.Context())
	require.NoError(t, err)
	require.True(t, cred.IsZero())
}

// TestMemoryNoTornReads drives concurrent writers of matched token pairs and
// checks readers never observe an access token from one pair combined with a
// refresh token from another.
func TestMemoryNoTornReads(t *testing.T) {
	t.Parallel()

	store := tokenstore.NewMemory()
	require.NoError(t, store.Set(t.Context(), tokenstore.Credential{AccessToken: "access-0", RefreshToken: "refresh-0"}))

	pairs := []tokenstore.Credential{
		{AccessToken: "access-1", RefreshToken: "refresh-1"},
		{AccessToken: "access-2", RefreshToken: "refresh-2"},
		{AccessToken: "access-3", RefreshToken: "refresh-3"},
	}

	var wg sync.WaitGroup
	for _, p := range pairs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				_ = store.Set(t.Context(), p)
			}
		}()
	}

	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				cred, err := store.Get(t.Context())
				require.NoError(t, err)

				// "access-N" must pair with "refresh-N"
				require.Equal(t,
					cred.AccessToken[len("access-"):],
					cred.RefreshToken[len("refresh-"):],
				)
			}
		}()
	}

	wg.Wait()
}
