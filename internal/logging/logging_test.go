package logging

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestLevels(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, New("debug", false).GetLevel())
	assert.Equal(t, logrus.InfoLevel, New("info", false).GetLevel())
	assert.Equal(t, logrus.WarnLevel, New("warn", false).GetLevel())
	assert.Equal(t, logrus.ErrorLevel, New("error", false).GetLevel())
	assert.Equal(t, logrus.InfoLevel, New("bogus", false).GetLevel())
}

func TestVerboseForcesDebug(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, New("error", true).GetLevel())
}
