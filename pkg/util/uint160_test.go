package util

import (
	"encoding/hex"
	"encoding/json"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUint160UnmarshalJSON(t *testing.T) {
	str := "0263c1de100292992b6615a42974dc9e4b3394e9"
	expected, err := Uint160DecodeStringLE(str)
	assert.NoError(t, err)

	// UnmarshalJSON decodes hex-strings
	var u1, u2 Uint160

	assert.NoError(t, u1.UnmarshalJSON([]byte(`"`+str+`"`)))
	assert.True(t, expected.Equals(u1))

	s, err := expected.MarshalJSON()
	assert.NoError(t, err)

	// UnmarshalJSON decodes hex-strings prefixed by 0x
	assert.NoError(t, u2.UnmarshalJSON(s))
	assert.True(t, expected.Equals(u1))

	assert.Error(t, u2.UnmarshalJSON([]byte(`123`)))
}

func TestUInt160DecodeString(t *testing.T) {
	hexStr := "2d3b96ae1bcc5a585e075e3b81920210dec16302"
	val, err := Uint160DecodeStringBE(hexStr)
	assert.NoError(t, err)
	assert.Equal(t, hexStr, val.String())

	valLE, err := Uint160DecodeStringLE(hexStr)
	assert.NoError(t, err)
	assert.Equal(t, val, valLE.Reverse())

	_, err = Uint160DecodeStringBE(hexStr[1:])
	assert.Error(t, err)

	_, err = Uint160DecodeStringLE(hexStr[1:])
	assert.Error(t, err)

	hexStr = "zz3b96ae1bcc5a585e075e3b81920210dec16302"
	_, err = Uint160DecodeStringBE(hexStr)
	assert.Error(t, err)

	_, err = Uint160DecodeStringLE(hexStr)
	assert.Error(t, err)
}

func TestUint160DecodeBytes(t *testing.T) {
	hexStr := "2d3b96ae1bcc5a585e075e3b81920210dec16302"
	b, err := hex.DecodeString(hexStr)
	require.NoError(t, err)

	val, err := Uint160DecodeBytesBE(b)
	assert.NoError(t, err)
	assert.Equal(t, hexStr, val.String())

	valLE, err := Uint160DecodeBytesLE(b)
	assert.NoError(t, err)
	assert.Equal(t, val, valLE.Reverse())

	_, err = Uint160DecodeBytesLE(b[1:])
	assert.Error(t, err)

	_, err = Uint160DecodeBytesBE(b[1:])
	assert.Error(t, err)
}

func TestUInt160Equals(t *testing.T) {
	a := "2d3b96ae1bcc5a585e075e3b81920210dec16302"
	b := "4d3b96ae1bcc5a585e075e3b81920210dec16302"

	ua, err := Uint160DecodeStringBE(a)
	require.NoError(t, err)

	ub, err := Uint160DecodeStringBE(b)
	require.NoError(t, err)
	assert.False(t, ua.Equals(ub), "%s and %s cannot be equal", ua, ub)
	assert.True(t, ua.Equals(ua), "%s and %s must be equal", ua, ua)
}

func TestUInt160Less(t *testing.T) {
	a := "2d3b96ae1bcc5a585e075e3b81920210dec16302"
	b := "2d3b96ae1bcc5a585e075e3b81920210dec16303"

	ua, err := Uint160DecodeStringBE(a)
	require.NoError(t, err)
	ua2, err := Uint160DecodeStringBE(a)
	require.NoError(t, err)
	ub, err := Uint160DecodeStringBE(b)
	require.NoError(t, err)
	assert.True(t, ua.Less(ub))
	assert.False(t, ua.Less(ua2))
	assert.False(t, ub.Less(ua))
}

func TestUInt160String(t *testing.T) {
	hexStr := "b28427088a3729b2536d10122960394e8be6721f"
	hexRevStr := "1f72e68b4e39602912106d53b229378a082784b2"

	val, err := Uint160DecodeStringBE(hexStr)
	assert.Nil(t, err)

	assert.Equal(t, hexStr, val.String())
	assert.Equal(t, hexRevStr, val.StringLE())
}

func TestUint160Sort(t *testing.T) {
	strs := []string{
		"f3812db982f3b0089a21a278988efeec6a027b25",
		"c3134d001965d3e0484efdd0120f3dd77a3dc333",
		"e660d7abb98cf171e5f873fcfd68d3e2fc3c83c9",
	}
	us := make([]Uint160, len(strs))
	for i := range strs {
		us[i], _ = Uint160DecodeStringBE(strs[i])
	}
	sort.Slice(us, func(i, j int) bool { return us[i].Less(us[j]) })
	require.Equal(t, strs[1], us[0].String())
	require.Equal(t, strs[2], us[1].String())
	require.Equal(t, strs[0], us[2].String())
}

func TestUint160MarshalValue(t *testing.T) {
	u, err := Uint160DecodeStringBE("b28427088a3729b2536d10122960394e8be6721f")
	require.NoError(t, err)
	data, err := json.Marshal(u)
	require.NoError(t, err)
	require.Equal(t, `"0x1f72e68b4e39602912106d53b229378a082784b2"`, string(data))
}
