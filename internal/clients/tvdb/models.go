package tvdb

import "strings"

// Artwork type codes, per GET /artwork/types.
const (
	ArtworkSeriesBanner     = 1
	ArtworkSeriesPoster     = 2
	ArtworkSeriesBackground = 3
	ArtworkSeasonBanner     = 6
	ArtworkSeasonPoster     = 7
	ArtworkSeasonBackground = 8
	ArtworkEpisodeScreencap = 11
	ArtworkSeriesClearLogo  = 23
)

// Character (people) type codes, per GET /people/types. Records with any
// other code carry no credit we surface and are dropped by the mapper.
const (
	CharacterDirector = 1
	CharacterWriter   = 2
	CharacterActor    = 3
	CharacterProducer = 7
)

// Remote-id source type codes, per GET /sources.
const (
	RemoteIMDB       = 2
	RemoteTheMovieDB = 12
)

// Season ordering words as they appear on season type records.
const (
	SeasonOrderOfficial  = "official"
	SeasonOrderDVD       = "dvd"
	SeasonOrderAbsolute  = "absolute"
	SeasonOrderAlternate = "alternate"
	SeasonOrderRegional  = "regional"
)

// SeasonTypeTag maps an upstream ordering word to the short tag used in
// rating keys. The official order maps to "default"; unknown words pass
// through lowercased.
func SeasonTypeTag(orderingType string) string {
	word := strings.ToLower(strings.TrimSpace(orderingType))
	switch word {
	case "", SeasonOrderOfficial:
		return "default"
	default:
		return word
	}
}

// SeasonOrderFromTag is the inverse of SeasonTypeTag: it yields the ordering
// word expected by the upstream episode endpoints.
func SeasonOrderFromTag(tag string) string {
	if tag == "" || tag == "default" {
		return SeasonOrderOfficial
	}
	return tag
}

type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Company struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type RemoteID struct {
	ID         string `json:"id"`
	Type       int    `json:"type"`
	SourceName string `json:"sourceName"`
}

type Artwork struct {
	ID        int64  `json:"id"`
	Image     string `json:"image"`
	Thumbnail string `json:"thumbnail"`
	Type      int    `json:"type"`
	Score     int64  `json:"score"`
}

// Character is a single credit on a series or episode. Name is the character
// name, PersonName the credited person.
type Character struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	PeopleID     int64  `json:"peopleId"`
	PersonName   string `json:"personName"`
	PersonImgURL string `json:"personImgURL"`
	Image        string `json:"image"`
	Type         int    `json:"type"`
	Sort         int64  `json:"sort"`
}

type ContentRating struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Country     string `json:"country"`
	Description string `json:"description"`
}

type SeasonType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type Season struct {
	ID       int64      `json:"id"`
	SeriesID int64      `json:"seriesId"`
	Number   int        `json:"number"`
	Name     string     `json:"name"`
	Image    string     `json:"image"`
	Type     SeasonType `json:"type"`
}

type SeasonExtended struct {
	Season
	Episodes []Episode `json:"episodes"`
	Artwork  []Artwork `json:"artwork"`
}

type Episode struct {
	ID           int64  `json:"id"`
	SeriesID     int64  `json:"seriesId"`
	Name         string `json:"name"`
	Aired        string `json:"aired"`
	Runtime      int    `json:"runtime"`
	Overview     string `json:"overview"`
	Image        string `json:"image"`
	Number       int    `json:"number"`
	SeasonNumber int    `json:"seasonNumber"`
}

type EpisodeExtended struct {
	Episode
	Characters []Character `json:"characters"`
	RemoteIDs  []RemoteID  `json:"remoteIds"`
}

type Series struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Overview       string  `json:"overview"`
	Image          string  `json:"image"`
	FirstAired     string  `json:"firstAired"`
	Score          float64 `json:"score"`
	AverageRuntime int     `json:"averageRuntime"`
}

type SeriesExtended struct {
	Series
	OriginalNetwork *Company        `json:"originalNetwork"`
	LatestNetwork   *Company        `json:"latestNetwork"`
	Genres          []Genre         `json:"genres"`
	RemoteIDs       []RemoteID      `json:"remoteIds"`
	Characters      []Character     `json:"characters"`
	Artworks        []Artwork       `json:"artworks"`
	ContentRatings  []ContentRating `json:"contentRatings"`
	Companies       []Company       `json:"companies"`
	Seasons         []Season        `json:"seasons"`
}

// SearchResult is one hit from GET /search.
type SearchResult struct {
	ObjectID        string `json:"objectID"`
	TVDBID          string `json:"tvdb_id"`
	Type            string `json:"type"`
	Name            string `json:"name"`
	Year            string `json:"year"`
	Overview        string `json:"overview"`
	ImageURL        string `json:"image_url"`
	PrimaryLanguage string `json:"primary_language"`
}
