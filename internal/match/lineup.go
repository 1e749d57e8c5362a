package match

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// DefaultFormation is used when a lineup does not name one.
const DefaultFormation = "4-3-3"

// GoalkeeperKey is the position key of the goalkeeper.
const GoalkeeperKey = "gk"

// Lineups holds both teams' lineups.
type Lineups struct {
	Team1 Lineup `json:"team1" yaml:"team1" msgpack:"team1"`
	Team2 Lineup `json:"team2" yaml:"team2" msgpack:"team2"`
}

// Lineup is one team's formation, starters by pitch position, bench and manager.
type Lineup struct {
	Formation   string               `json:"formation,omitempty" yaml:"formation" msgpack:"formation"`
	Players     map[string]PlayerRef `json:"players,omitempty" yaml:"players" msgpack:"players"`
	Substitutes Substitutes          `json:"substitutes,omitempty" yaml:"substitutes" msgpack:"substitutes"`
	Manager     *PlayerRef           `json:"manager,omitempty" yaml:"manager" msgpack:"manager"`
}

// Rows returns the outfield row sizes of the lineup's formation.
func (l Lineup) Rows() []int {
	rows, err := ParseFormation(l.Formation)
	if err != nil || l.Formation == "" {
		rows, _ = ParseFormation(DefaultFormation)
	}
	return rows
}

// PositionKeys lists every pitch position of the formation: the goalkeeper
// first, then row-{r}-p-{i} for each outfield slot.
func (l Lineup) PositionKeys() []string {
	keys := []string{GoalkeeperKey}
	for r, count := range l.Rows() {
		for i := 0; i < count; i++ {
			keys = append(keys, fmt.Sprintf("row-%d-p-%d", r, i))
		}
	}
	return keys
}

// ParseFormation splits a formation such as "4-4-2" into row sizes.
func ParseFormation(formation string) ([]int, error) {
	parts := strings.Split(formation, "-")
	rows := make([]int, 0, len(parts))
	total := 0
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n <= 0 {
			return nil, invalidValue("malformed formation %q", formation)
		}
		rows = append(rows, n)
		total += n
	}
	if total != 10 {
		return nil, invalidValue("formation %q has %d outfield players, want 10", formation, total)
	}
	return rows, nil
}

// PlayerRef points at a registered player or manager, or carries a bare name
// for someone who is not registered.
type PlayerRef struct {
	ID    string `json:"_id,omitempty" yaml:"id" msgpack:"id"`
	Name  string `json:"name" yaml:"name" msgpack:"name"`
	Image string `json:"image,omitempty" yaml:"image" msgpack:"image"`
}

// UnmarshalJSON accepts either an object or a bare name string.
func (p *PlayerRef) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*p = PlayerRef{Name: strings.TrimSpace(name)}
		return nil
	}
	type plain PlayerRef
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("player reference: %w", err)
	}
	*p = PlayerRef(v)
	return nil
}

// Substitutes is the bench. It decodes from a list or a comma-separated string.
type Substitutes []PlayerRef

// UnmarshalJSON accepts an array of references or a comma-separated name list.
func (s *Substitutes) UnmarshalJSON(data []byte) error {
	var list string
	if err := json.Unmarshal(data, &list); err == nil {
		var out Substitutes
		for _, name := range strings.Split(list, ",") {
			if name = strings.TrimSpace(name); name != "" {
				out = append(out, PlayerRef{Name: name})
			}
		}
		*s = out
		return nil
	}
	var refs []PlayerRef
	if err := json.Unmarshal(data, &refs); err != nil {
		return fmt.Errorf("substitutes: %w", err)
	}
	*s = refs
	return nil
}
