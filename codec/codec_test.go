package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type trial struct {
	ID       int       `json:"id"`
	Vector   []float64 `json:"vector"`
	Distance float64   `json:"distance"`
}

func TestByName(t *testing.T) {
	for _, name := range []string{"json", "go-json"} {
		c, ok := ByName(name)
		require.True(t, ok)
		assert.Equal(t, name, c.Name())
	}

	_, ok := ByName("msgpack")
	assert.False(t, ok)
}

func TestCodecsInterchangeable(t *testing.T) {
	in := trial{ID: 7, Vector: []float64{12, 92.5}, Distance: 0.25}

	for _, enc := range []Codec{JSON{}, GoJSON{}} {
		for _, dec := range []Codec{JSON{}, GoJSON{}} {
			t.Run(enc.Name()+"_"+dec.Name(), func(t *testing.T) {
				data, err := enc.Marshal(in)
				require.NoError(t, err)

				var out trial
				require.NoError(t, dec.Unmarshal(data, &out))
				assert.Equal(t, in, out)
			})
		}
	}
}

func TestLookup(t *testing.T) {
	c, err := Lookup("")
	require.NoError(t, err)
	assert.Equal(t, Default, c)

	c, err = Lookup("json")
	require.NoError(t, err)
	assert.Equal(t, "json", c.Name())

	_, err = Lookup("msgpack")
	assert.ErrorIs(t, err, ErrUnknownCodec)
	assert.ErrorContains(t, err, "msgpack")
}
