package content

import (
	"github.com/tatianab/scout-career/internal/rng"
)

var firstNames = []string{
	"Luca", "Mateo", "Noah", "Jonas", "Rafael", "Tomás", "Emil", "Kofi", "Yusuf", "Ivan",
	"Diego", "Marco", "Sami", "Oscar", "Hugo", "Elias", "Bruno", "Felix", "Andrei", "Kai",
}

var lastNames = []string{
	"Silva", "Moreau", "Keller", "Rossi", "Novak", "Mensah", "Haddad", "Costa", "Lindqvist", "Petrov",
	"Garcia", "Bakker", "Okafor", "Duarte", "Fischer", "Santos", "Varga", "Yilmaz", "Murphy", "Kowalski",
}

var clubPrefixes = []string{"Real", "Sporting", "Athletic", "United", "Racing", "Dynamo", "Olympic", "Union"}

var clubTowns = []string{
	"Harbor", "Northgate", "Valle", "Rivermouth", "Eastfield", "Montclair", "Stonebridge", "Lakeside",
	"Westmoor", "Ashford", "Redcliff", "Pinehurst", "Brookhaven", "Kingsport", "Greyhaven", "Millbrook",
}

// Positions used for players and directives.
var Positions = []string{"GK", "CB", "FB", "DM", "CM", "AM", "W", "ST"}

// Countries is the pool worlds draw from, home country first.
var Countries = []string{"England", "Spain", "Portugal", "Netherlands", "Brazil", "Nigeria"}

func personName(r *rng.Stream) string {
	first, _ := rng.Pick(r, firstNames)
	last, _ := rng.Pick(r, lastNames)
	return first + " " + last
}

func clubName(r *rng.Stream) string {
	prefix, _ := rng.Pick(r, clubPrefixes)
	town, _ := rng.Pick(r, clubTowns)
	return prefix + " " + town
}
