package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"A101", "a101"},
		{"Room  B 202", "room-b-202"},
		{"  East Wing!  ", "east-wing"},
		{"---", ""},
		{"Phòng 12", "ph-ng-12"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Slugify(c.in), "input %q", c.in)
	}
}

func TestRoomSlug(t *testing.T) {
	assert.Equal(t, "a101-floor-3", RoomSlug("A101", 3))
	assert.Equal(t, "b-202-floor-1", RoomSlug("B 202", 1))
}
