package models

// HasDiscovered reports whether a discovery record exists for the player.
func (g *GameState) HasDiscovered(playerID string) bool {
	for _, d := range g.Discoveries {
		if d.PlayerID == playerID {
			return true
		}
	}
	return false
}

// RecordDiscovery appends d unless the player was already discovered. Every
// subsystem that can discover a player goes through here.
func (g *GameState) RecordDiscovery(d DiscoveryRecord) bool {
	if d.PlayerID == "" || g.HasDiscovered(d.PlayerID) {
		return false
	}
	g.Discoveries = append(g.Discoveries, d)
	return true
}
