package domain

import (
	"fmt"
	"time"
)

// Greeting picks a salutation for the hour of now.
func Greeting(now time.Time) string {
	hour := now.Hour()
	switch {
	case hour >= 18 || hour < 4:
		return "Good Evening"
	case hour >= 11:
		return "Good Afternoon"
	default:
		return "Good Morning"
	}
}

// WelcomeMessage greets the named user.
func WelcomeMessage(name string, now time.Time) string {
	return fmt.Sprintf("%s, %s", Greeting(now), name)
}
