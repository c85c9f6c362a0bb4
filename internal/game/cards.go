package game

// BlueStripesCommando: Close 4. Tight bond.
func BlueStripesCommando() *Card {
	return &Card{
		ID:      "blue_stripes_commando",
		Name:    "Blue Stripes Commando",
		Kind:    KindUnit,
		Value:   4,
		Row:     RowClose,
		Ability: TightBond(),
	}
}

// CrinfridReavers: Ranged 5. Tight bond.
func CrinfridReavers() *Card {
	return &Card{
		ID:      "crinfrid_reavers",
		Name:    "Crinfrid Reavers Dragon Hunter",
		Kind:    KindUnit,
		Value:   5,
		Row:     RowRanged,
		Ability: TightBond(),
	}
}

// Catapult: Siege 8. Tight bond.
func Catapult() *Card {
	return &Card{
		ID:      "catapult",
		Name:    "Catapult",
		Kind:    KindUnit,
		Value:   8,
		Row:     RowSiege,
		Ability: TightBond(),
	}
}

// PoorInfantry: Close 1. Tight bond.
func PoorInfantry() *Card {
	return &Card{
		ID:      "poor_infantry",
		Name:    "Poor Infantry",
		Kind:    KindUnit,
		Value:   1,
		Row:     RowClose,
		Ability: TightBond(),
	}
}

// PrinceStennis: Close 5. Spy: plays on the opponent's side, draw 2.
func PrinceStennis() *Card {
	return &Card{
		ID:      "prince_stennis",
		Name:    "Prince Stennis",
		Kind:    KindUnit,
		Value:   5,
		Row:     RowClose,
		Ability: Spy(),
	}
}

// SigismundDijkstra: Close 4. Spy.
func SigismundDijkstra() *Card {
	return &Card{
		ID:      "sigismund_dijkstra",
		Name:    "Sigismund Dijkstra",
		Kind:    KindUnit,
		Value:   4,
		Row:     RowClose,
		Ability: Spy(),
	}
}

// Thaler: Siege 1. Spy.
func Thaler() *Card {
	return &Card{
		ID:      "thaler",
		Name:    "Thaler",
		Kind:    KindUnit,
		Value:   1,
		Row:     RowSiege,
		Ability: Spy(),
	}
}

// Arachas: Close 4. Muster (arachas).
func Arachas() *Card {
	return &Card{
		ID:      "arachas",
		Name:    "Arachas",
		Kind:    KindUnit,
		Value:   4,
		Row:     RowClose,
		Ability: Muster("arachas"),
	}
}

// ArachasBehemoth: Siege 6. Muster (arachas).
func ArachasBehemoth() *Card {
	return &Card{
		ID:      "arachas_behemoth",
		Name:    "Arachas Behemoth",
		Kind:    KindUnit,
		Value:   6,
		Row:     RowSiege,
		Ability: Muster("arachas"),
	}
}

// Nekker: Close 2. Muster (nekker).
func Nekker() *Card {
	return &Card{
		ID:      "nekker",
		Name:    "Nekker",
		Kind:    KindUnit,
		Value:   2,
		Row:     RowClose,
		Ability: Muster("nekker"),
	}
}

// GaunterDarkness: Ranged 4. Muster (gaunter).
func GaunterDarkness() *Card {
	return &Card{
		ID:      "gaunter_darkness",
		Name:    "Gaunter O'Dimm: Darkness",
		Kind:    KindUnit,
		Value:   4,
		Row:     RowRanged,
		Ability: Muster("gaunter"),
	}
}

// Villentretenmerth: Close 7. Scorch on arrival.
func Villentretenmerth() *Card {
	return &Card{
		ID:      "villentretenmerth",
		Name:    "Villentretenmerth",
		Kind:    KindUnit,
		Value:   7,
		Row:     RowClose,
		Ability: Scorch(),
	}
}

// DunBannerMedic: Siege 5. Medic: return a discarded unit to hand.
func DunBannerMedic() *Card {
	return &Card{
		ID:      "dun_banner_medic",
		Name:    "Dun Banner Medic",
		Kind:    KindUnit,
		Value:   5,
		Row:     RowSiege,
		Ability: Medic(),
	}
}

// Ballista: Siege 6.
func Ballista() *Card {
	return &Card{
		ID:      "ballista",
		Name:    "Ballista",
		Kind:    KindUnit,
		Value:   6,
		Row:     RowSiege,
		Ability: NoAbility(),
	}
}

// Dethmold: Ranged 6.
func Dethmold() *Card {
	return &Card{
		ID:      "dethmold",
		Name:    "Dethmold",
		Kind:    KindUnit,
		Value:   6,
		Row:     RowRanged,
		Ability: NoAbility(),
	}
}

// KeiraMetz: Ranged 5.
func KeiraMetz() *Card {
	return &Card{
		ID:      "keira_metz",
		Name:    "Keira Metz",
		Kind:    KindUnit,
		Value:   5,
		Row:     RowRanged,
		Ability: NoAbility(),
	}
}

// Ves: Close 5.
func Ves() *Card {
	return &Card{
		ID:      "ves",
		Name:    "Ves",
		Kind:    KindUnit,
		Value:   5,
		Row:     RowClose,
		Ability: NoAbility(),
	}
}

// YarpenZigrin: Close 2.
func YarpenZigrin() *Card {
	return &Card{
		ID:      "yarpen_zigrin",
		Name:    "Yarpen Zigrin",
		Kind:    KindUnit,
		Value:   2,
		Row:     RowClose,
		Ability: NoAbility(),
	}
}

// Siegfried: Close 5.
func Siegfried() *Card {
	return &Card{
		ID:      "siegfried",
		Name:    "Siegfried of Denesle",
		Kind:    KindUnit,
		Value:   5,
		Row:     RowClose,
		Ability: NoAbility(),
	}
}

// SheldonSkaggs: Ranged 4.
func SheldonSkaggs() *Card {
	return &Card{
		ID:      "sheldon_skaggs",
		Name:    "Sheldon Skaggs",
		Kind:    KindUnit,
		Value:   4,
		Row:     RowRanged,
		Ability: NoAbility(),
	}
}

// BarclayEls: Close or Ranged 6 (agile).
func BarclayEls() *Card {
	return &Card{
		ID:      "barclay_els",
		Name:    "Barclay Els",
		Kind:    KindUnit,
		Value:   6,
		Row:     RowAny,
		Ability: NoAbility(),
	}
}

// Ciaran: Agile 3.
func Ciaran() *Card {
	return &Card{
		ID:      "ciaran",
		Name:    "Ciaran aep Easnillien",
		Kind:    KindUnit,
		Value:   3,
		Row:     RowAny,
		Ability: NoAbility(),
	}
}

// Geralt: Hero, Close 15.
func Geralt() *Card {
	return &Card{
		ID:      "geralt",
		Name:    "Geralt of Rivia",
		Kind:    KindUnit,
		Value:   15,
		Row:     RowClose,
		Ability: NoAbility(),
		Hero:    true,
	}
}

// Ciri: Hero, Close 15.
func Ciri() *Card {
	return &Card{
		ID:      "ciri",
		Name:    "Cirilla Fiona Elen Riannon",
		Kind:    KindUnit,
		Value:   15,
		Row:     RowClose,
		Ability: NoAbility(),
		Hero:    true,
	}
}

// Yennefer: Hero, Ranged 7. Medic.
func Yennefer() *Card {
	return &Card{
		ID:      "yennefer",
		Name:    "Yennefer of Vengerberg",
		Kind:    KindUnit,
		Value:   7,
		Row:     RowRanged,
		Ability: Medic(),
		Hero:    true,
	}
}

// Triss: Hero, Close 7.
func Triss() *Card {
	return &Card{
		ID:      "triss",
		Name:    "Triss Merigold",
		Kind:    KindUnit,
		Value:   7,
		Row:     RowClose,
		Ability: NoAbility(),
		Hero:    true,
	}
}

// BitingFrost: Weather: every non-hero Close unit counts as 1.
func BitingFrost() *Card {
	return &Card{
		ID:      "biting_frost",
		Name:    "Biting Frost",
		Kind:    KindWeather,
		Row:     RowNone,
		Ability: WeatherRow(RowClose),
	}
}

// ImpenetrableFog: Weather: every non-hero Ranged unit counts as 1.
func ImpenetrableFog() *Card {
	return &Card{
		ID:      "impenetrable_fog",
		Name:    "Impenetrable Fog",
		Kind:    KindWeather,
		Row:     RowNone,
		Ability: WeatherRow(RowRanged),
	}
}

// TorrentialRain: Weather: every non-hero Siege unit counts as 1.
func TorrentialRain() *Card {
	return &Card{
		ID:      "torrential_rain",
		Name:    "Torrential Rain",
		Kind:    KindWeather,
		Row:     RowNone,
		Ability: WeatherRow(RowSiege),
	}
}

// ClearSkies: Weather: lifts all weather.
func ClearSkies() *Card {
	return &Card{
		ID:      "clear_weather",
		Name:    "Clear Weather",
		Kind:    KindWeather,
		Row:     RowNone,
		Ability: ClearWeather(),
	}
}

// ScorchCard: Special: destroy the strongest unit(s) on the board.
func ScorchCard() *Card {
	return &Card{
		ID:      "scorch",
		Name:    "Scorch",
		Kind:    KindSpecial,
		Row:     RowNone,
		Ability: Scorch(),
	}
}
