package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zarlcorp/zpin/internal/pin"
)

func TestDescribe(t *testing.T) {
	id, err := Describe("38610150180")
	require.NoError(t, err)

	assert.Equal(t, Identity{
		PIN:       "38610150180",
		Gender:    pin.Male,
		BirthDate: time.Date(1986, 10, 15, 0, 0, 0, 0, time.UTC),
		Century:   1900,
		Serial:    "018",
	}, id)

	assert.Equal(t, 39, id.Age(fixedNow))
}

func TestDescribeRejectsInvalid(t *testing.T) {
	_, err := Describe("39902310167")
	assert.ErrorIs(t, err, pin.ErrInvalidDate)

	_, err = Describe("39310075456")
	assert.ErrorIs(t, err, pin.ErrChecksum)

	assert.Equal(t, 0, Identity{}.Age(fixedNow))
}

func TestAgeOfHandBuiltIdentity(t *testing.T) {
	// not from Describe, so the code was never validated
	id := Identity{PIN: "39310075456", Gender: pin.Male}
	assert.Equal(t, 0, id.Age(fixedNow))

	described, err := Describe("38610150180")
	require.NoError(t, err)
	assert.Equal(t, 38, described.Age(time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC)))
}
