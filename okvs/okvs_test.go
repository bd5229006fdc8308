package okvs

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/8888flbu/OTPSI/gf128"
)

func randElemSeeded(r *rand.Rand) gf128.Elem {
	return gf128.Elem{Hi: r.Uint64(), Lo: r.Uint64()}
}

func testParams(m uint64, w uint32, seed int64) Params {
	r := rand.New(rand.NewSource(seed))
	return Params{M: m, W: w, SeedR1: r.Uint64(), SeedR2: r.Uint64()}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	params := testParams(600, 40, 1)

	kvs := make([]KV, 200)
	seen := map[gf128.Elem]bool{}
	for i := range kvs {
		var k gf128.Elem
		for {
			k = randElemSeeded(r)
			if !seen[k] {
				seen[k] = true
				break
			}
		}
		kvs[i] = KV{Key: k, Value: randElemSeeded(r)}
	}

	storage, err := Encode(kvs, params)
	require.NoError(t, err)
	require.Len(t, storage, int(params.M))

	for _, kv := range kvs {
		got := storage.Decode(kv.Key, params)
		require.True(t, got.Equal(kv.Value), "decode mismatch for key %s", kv.Key)
	}
}

func TestDecodeOnUnknownKeyIsNotEncodedValue(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	params := testParams(400, 32, 2)

	kvs := []KV{
		{Key: randElemSeeded(r), Value: randElemSeeded(r)},
		{Key: randElemSeeded(r), Value: randElemSeeded(r)},
	}
	storage, err := Encode(kvs, params)
	require.NoError(t, err)

	unknown := randElemSeeded(r)
	got := storage.Decode(unknown, params)

	for _, kv := range kvs {
		require.False(t, got.Equal(kv.Value))
	}
}

func TestValidateRejectsBadParams(t *testing.T) {
	require.ErrorIs(t, Params{M: 10, W: 0}.Validate(), ErrParameterInvalid)
	require.ErrorIs(t, Params{M: 10, W: 20}.Validate(), ErrParameterInvalid)
	require.ErrorIs(t, Params{M: 10, W: 10}.Validate(), ErrParameterInvalid)
	require.NoError(t, Params{M: 11, W: 10}.Validate())
}

func TestEncodeRejectsInvalidParams(t *testing.T) {
	_, err := Encode(nil, Params{M: 5, W: 0})
	require.ErrorIs(t, err, ErrParameterInvalid)
}

func TestStorageWireRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	params := testParams(64, 16, 3)
	kvs := []KV{
		{Key: randElemSeeded(r), Value: randElemSeeded(r)},
		{Key: randElemSeeded(r), Value: randElemSeeded(r)},
	}
	storage, err := Encode(kvs, params)
	require.NoError(t, err)

	data, err := storage.MarshalBinary()
	require.NoError(t, err)

	var decoded Storage
	require.NoError(t, decoded.UnmarshalBinary(data))
	require.Equal(t, storage, decoded)

	for _, kv := range kvs {
		got := decoded.Decode(kv.Key, params)
		require.True(t, got.Equal(kv.Value))
	}
}

func TestParamsWireRoundTrip(t *testing.T) {
	p := Params{M: 600, W: 40, SeedR1: 0xdeadbeef, SeedR2: 0xc0ffee}
	data, err := p.MarshalBinary()
	require.NoError(t, err)

	var decoded Params
	require.NoError(t, decoded.UnmarshalBinary(data))
	require.Equal(t, p, decoded)
}
