package analysis

import "strings"

// Flask/phial auras worth preparation credit. Spell IDs cover the
// current and previous raid tiers; the name prefixes catch whatever the
// table misses after a content patch.
var flaskSpellIDs = map[int]bool{
	431971: true, // Flask of Tempered Swiftness
	431972: true, // Flask of Tempered Aggression
	431973: true, // Flask of Tempered Versatility
	431974: true, // Flask of Tempered Mastery
	432021: true, // Flask of Alchemical Chaos
	431641: true, // Flask of Saving Graces
	370652: true, // Phial of Static Empowerment
	371186: true, // Phial of Charged Isolation
	371339: true, // Phial of Elemental Chaos
	373257: true, // Phial of Glacial Fury
}

var flaskNamePrefixes = []string{
	"Flask of",
	"Phial of",
}

// Food buffs all roll up into the Well Fed aura.
var foodAuraNames = map[string]bool{
	"Well Fed":        true,
	"Hearty Well Fed": true,
}

func isFlaskAura(spellID int, name string) bool {
	if flaskSpellIDs[spellID] {
		return true
	}
	for _, prefix := range flaskNamePrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

func isFoodAura(name string) bool {
	return foodAuraNames[name]
}
