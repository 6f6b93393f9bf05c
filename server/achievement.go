package main

// AchievementDef describes one unlockable milestone
type AchievementDef struct {
	ID          string
	Name        string
	Description string
}

var Achievements = []AchievementDef{
	{"first_kill", "Target Down", "Defeat your first tank"},
	{"hat_trick", "Hat Trick", "Defeat 3 tanks in one game"},
	{"rampage", "Rampage", "Defeat 10 tanks in one game"},
	{"unstoppable", "Unstoppable", "Defeat 20 tanks in one game"},
	{"centurion", "Centurion", "Defeat 100 tanks in total"},
}

// CheckAchievements checks which milestones a finished game unlocks.
// Returns the newly unlocked definitions.
func CheckAchievements(db *DB, playerID int64, gameScore int) []AchievementDef {
	if db == nil || playerID == 0 {
		return nil
	}

	total, err := db.TotalDefeats(playerID)
	if err != nil {
		return nil
	}

	existing, err := db.GetAchievements(playerID)
	if err != nil {
		return nil
	}
	has := make(map[string]bool, len(existing))
	for _, id := range existing {
		has[id] = true
	}

	check := func(id string) bool {
		if has[id] {
			return false
		}
		switch id {
		case "first_kill":
			return gameScore >= 1
		case "hat_trick":
			return gameScore >= 3
		case "rampage":
			return gameScore >= 10
		case "unstoppable":
			return gameScore >= 20
		case "centurion":
			return total >= 100
		}
		return false
	}

	var unlocked []AchievementDef
	for _, def := range Achievements {
		if check(def.ID) {
			if newly, err := db.UnlockAchievement(playerID, def.ID); err == nil && newly {
				unlocked = append(unlocked, def)
			}
		}
	}
	return unlocked
}
