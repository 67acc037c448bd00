package utils

import (
	"time"
)

// AvatarChoices lists the avatar images a user can pick on the settings page.
func AvatarChoices() []string {
	return []string{
		"default-avatar.png",
		"dawn.png",
		"lantern.png",
		"seedling.png",
		"wave.png",
		"mountain.png",
	}
}

func IsAvatarChoice(avatar string) bool {
	for _, a := range AvatarChoices() {
		if a == avatar {
			return true
		}
	}
	return false
}

// GetDaysSinceJoined returns whole days since the account was created.
func GetDaysSinceJoined(createdAt time.Time) int {
	return int(time.Since(createdAt).Hours() / 24)
}
