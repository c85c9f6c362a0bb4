package game

import "fmt"

// BoardRow is the ordered list of cards one side has in one combat row.
type BoardRow struct {
	Kind  Row
	Cards []*CardInstance
}

// Board holds both sides' rows, the shared weather layer and the pass flags.
type Board struct {
	rows    [2][RowCount]BoardRow
	weather [RowCount]bool
	Passed  [2]bool
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	b := &Board{}
	for s := 0; s < 2; s++ {
		for i, r := range CombatRows {
			b.rows[s][i].Kind = r
		}
	}
	return b
}

// Row returns the row for a side. The returned slice must not be modified.
func (b *Board) Row(side Side, row Row) *BoardRow {
	return &b.rows[side][row.index()]
}

// CanPlace reports whether card may go into (side, row) without mutating anything.
func (b *Board) CanPlace(ci *CardInstance, side Side, row Row) error {
	if side != SidePlayer && side != SideOpponent {
		return fmt.Errorf("%w: unknown side %d", ErrIllegalPlacement, side)
	}
	if ci.Card.Kind != KindUnit {
		return fmt.Errorf("%w: %s is a %s card and never occupies a row", ErrIllegalPlacement, ci.Card.Name, ci.Card.Kind)
	}
	if !row.IsCombat() {
		return fmt.Errorf("%w: %s is not a combat row", ErrIllegalPlacement, row)
	}
	if ci.Card.Row != RowAny && ci.Card.Row != row {
		return fmt.Errorf("%w: %s belongs in the %s row, not %s", ErrIllegalPlacement, ci.Card.Name, ci.Card.Row, row)
	}
	if _, _, ok := b.Locate(ci); ok {
		return fmt.Errorf("%w: %s is already on the board", ErrIllegalPlacement, ci)
	}
	return nil
}

// Place inserts a unit instance into (side, row).
func (b *Board) Place(ci *CardInstance, side Side, row Row) error {
	if err := b.CanPlace(ci, side, row); err != nil {
		return err
	}
	r := b.Row(side, row)
	r.Cards = append(r.Cards, ci)
	return nil
}

// Locate finds which side and row hold the instance.
func (b *Board) Locate(ci *CardInstance) (Side, Row, bool) {
	for s := 0; s < 2; s++ {
		for i := range b.rows[s] {
			for _, c := range b.rows[s][i].Cards {
				if c.ID == ci.ID {
					return Side(s), b.rows[s][i].Kind, true
				}
			}
		}
	}
	return SideNone, RowNone, false
}

// Remove takes an instance off the board. Returns false if it was not there.
func (b *Board) Remove(ci *CardInstance) bool {
	side, row, ok := b.Locate(ci)
	if !ok {
		return false
	}
	r := b.Row(side, row)
	for i, c := range r.Cards {
		if c.ID == ci.ID {
			r.Cards = append(r.Cards[:i:i], r.Cards[i+1:]...)
			break
		}
	}
	return true
}

// SetWeather freezes a row for both sides. Setting it twice is a no-op.
func (b *Board) SetWeather(row Row) {
	if row.IsCombat() {
		b.weather[row.index()] = true
	}
}

// ClearWeather lifts every active weather effect.
func (b *Board) ClearWeather() {
	b.weather = [RowCount]bool{}
}

// Frozen reports whether weather is active on the row.
func (b *Board) Frozen(row Row) bool {
	return row.IsCombat() && b.weather[row.index()]
}

// Weather lists the rows currently under weather, in display order.
func (b *Board) Weather() []Row {
	var rows []Row
	for _, r := range CombatRows {
		if b.Frozen(r) {
			rows = append(rows, r)
		}
	}
	return rows
}

// EffectiveValue computes a placed card's current value in the given row.
func (b *Board) EffectiveValue(side Side, row Row, ci *CardInstance) int {
	card := ci.Card
	if card.Kind != KindUnit {
		return 0
	}
	if card.Hero {
		return card.Value
	}
	value := card.Value
	if b.Frozen(row) {
		value = 1
	}
	if card.Ability.Kind == AbilityTightBond {
		value *= b.countInRow(side, row, card.ID)
	}
	return value
}

func (b *Board) countInRow(side Side, row Row, cardID string) int {
	n := 0
	for _, c := range b.Row(side, row).Cards {
		if c.Card.ID == cardID {
			n++
		}
	}
	return n
}

// RowValue sums the effective values of the row. Always recomputed.
func (b *Board) RowValue(side Side, row Row) int {
	total := 0
	for _, c := range b.Row(side, row).Cards {
		total += b.EffectiveValue(side, row, c)
	}
	return total
}

// SideTotal is the sum of the three row values for a side.
func (b *Board) SideTotal(side Side) int {
	total := 0
	for _, r := range CombatRows {
		total += b.RowValue(side, r)
	}
	return total
}

// PlacedUnit is a card on the board together with its position.
type PlacedUnit struct {
	Card *CardInstance
	Side Side
	Row  Row
}

// Units returns every placed card, player side first, rows in display order.
func (b *Board) Units() []PlacedUnit {
	var units []PlacedUnit
	for s := 0; s < 2; s++ {
		for _, r := range CombatRows {
			for _, c := range b.Row(Side(s), r).Cards {
				units = append(units, PlacedUnit{Card: c, Side: Side(s), Row: r})
			}
		}
	}
	return units
}

// Count returns how many cards are on the board.
func (b *Board) Count() int {
	n := 0
	for s := 0; s < 2; s++ {
		for i := range b.rows[s] {
			n += len(b.rows[s][i].Cards)
		}
	}
	return n
}

// ScorchTargets returns every non-hero unit at the highest effective value on
// the board. A board whose best value is zero yields nothing.
func (b *Board) ScorchTargets(exclude *CardInstance) []PlacedUnit {
	best := 0
	var targets []PlacedUnit
	for _, u := range b.Units() {
		if u.Card.Card.Hero || u.Card.Card.Kind != KindUnit {
			continue
		}
		if exclude != nil && u.Card.ID == exclude.ID {
			continue
		}
		v := b.EffectiveValue(u.Side, u.Row, u.Card)
		switch {
		case v > best:
			best = v
			targets = []PlacedUnit{u}
		case v == best && v > 0:
			targets = append(targets, u)
		}
	}
	return targets
}

// Clear empties every row, lifts weather and resets pass flags. The removed
// cards are returned so they can go to their owners' discard piles.
func (b *Board) Clear() []*CardInstance {
	var removed []*CardInstance
	for s := 0; s < 2; s++ {
		for i := range b.rows[s] {
			removed = append(removed, b.rows[s][i].Cards...)
			b.rows[s][i].Cards = nil
		}
	}
	b.weather = [RowCount]bool{}
	b.Passed = [2]bool{}
	return removed
}

// Clone returns a deep copy of the board. Card instances are shared.
func (b *Board) Clone() *Board {
	nb := &Board{weather: b.weather, Passed: b.Passed}
	for s := 0; s < 2; s++ {
		for i := range b.rows[s] {
			nb.rows[s][i].Kind = b.rows[s][i].Kind
			nb.rows[s][i].Cards = append([]*CardInstance(nil), b.rows[s][i].Cards...)
		}
	}
	return nb
}

// CheckInvariants verifies that every instance sits in exactly one row and
// that every row holds only units of a compatible affinity.
func (b *Board) CheckInvariants() error {
	seen := make(map[int]PlacedUnit)
	for _, u := range b.Units() {
		if prev, ok := seen[u.Card.ID]; ok {
			return invariant("%s is in both %s/%s and %s/%s", u.Card, prev.Side, prev.Row, u.Side, u.Row)
		}
		seen[u.Card.ID] = u
		if u.Card.Card.Kind != KindUnit {
			return invariant("%s card %s occupies a row", u.Card.Card.Kind, u.Card)
		}
		if u.Card.Card.Row != RowAny && u.Card.Card.Row != u.Row {
			return invariant("%s sits in the %s row", u.Card, u.Row)
		}
	}
	return nil
}
