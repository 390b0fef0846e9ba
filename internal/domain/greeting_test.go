package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGreeting(t *testing.T) {
	tests := []struct {
		hour     int
		expected string
	}{
		{0, "Good Evening"},
		{3, "Good Evening"},
		{4, "Good Morning"},
		{10, "Good Morning"},
		{11, "Good Afternoon"},
		{17, "Good Afternoon"},
		{18, "Good Evening"},
		{23, "Good Evening"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			now := time.Date(2024, 1, 1, tt.hour, 30, 0, 0, time.Local)
			assert.Equal(t, tt.expected, Greeting(now))
		})
	}
}

func TestWelcomeMessage(t *testing.T) {
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.Local)
	assert.Equal(t, "Good Morning, Ada", WelcomeMessage("Ada", now))
}
