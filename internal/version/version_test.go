package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfoMatchesGetters(t *testing.T) {
	v, c, d := Info()

	assert.NotEmpty(t, v)
	assert.Equal(t, GetVersion(), v)
	assert.Equal(t, GetCommit(), c)
	assert.Equal(t, GetDate(), d)
}

func TestString(t *testing.T) {
	s := String()

	assert.Contains(t, s, "return-service")
	assert.Contains(t, s, "version="+GetVersion())
	assert.Contains(t, s, "commit="+GetCommit())
	assert.Contains(t, s, "date="+GetDate())
}
