// Package plex holds the JSON schema served to the media-management client.
// Field names follow the Plex provider wire format.
package plex

// Entity type words used in metadata items and guid URIs.
const (
	TypeShow    = "show"
	TypeSeason  = "season"
	TypeEpisode = "episode"
)

// Image type words.
const (
	ImageCoverPoster = "coverPoster"
	ImageBackground  = "background"
	ImageClearLogo   = "clearLogo"
	ImageSnapshot    = "snapshot"
)

// MediaContainer is the top-level envelope for every response.
type MediaContainer struct {
	Size       int        `json:"size"`
	TotalSize  int        `json:"totalSize"`
	Offset     int        `json:"offset"`
	Identifier string     `json:"identifier,omitempty"`
	Metadata   []Metadata `json:"Metadata,omitempty"`
	Image      []Image    `json:"Image,omitempty"`
}

// GUID is one external identifier, e.g. "imdb://tt0903747" or "tvdb://81189".
type GUID struct {
	ID string `json:"id"`
}

// Tag is a simple named tag (genre, network).
type Tag struct {
	Tag string `json:"tag"`
}

// Role is a cast or crew credit. Role is only set for cast entries.
type Role struct {
	Tag   string `json:"tag"`
	Role  string `json:"role,omitempty"`
	Thumb string `json:"thumb,omitempty"`
	Order int    `json:"order,omitempty"`
}

// Rating is a typed rating value, e.g. an audience score.
type Rating struct {
	Image string  `json:"image,omitempty"`
	Type  string  `json:"type"`
	Value float64 `json:"value"`
}

// Image is a typed artwork reference.
type Image struct {
	Type string `json:"type"`
	URL  string `json:"url"`
	Alt  string `json:"alt,omitempty"`
}

// Metadata is one show, season or episode. Seasons carry parent linkage to
// their show; episodes additionally carry grandparent linkage.
type Metadata struct {
	RatingKey             string `json:"ratingKey"`
	GUID                  string `json:"guid"`
	Type                  string `json:"type"`
	Title                 string `json:"title,omitempty"`
	Summary               string `json:"summary,omitempty"`
	Year                  int    `json:"year,omitempty"`
	Index                 int    `json:"index,omitempty"`
	ParentIndex           int    `json:"parentIndex,omitempty"`
	Duration              int    `json:"duration,omitempty"`
	ContentRating         string `json:"contentRating,omitempty"`
	OriginallyAvailableAt string `json:"originallyAvailableAt,omitempty"`
	Thumb                 string `json:"thumb,omitempty"`
	Art                   string `json:"art,omitempty"`

	ParentRatingKey string `json:"parentRatingKey,omitempty"`
	ParentGUID      string `json:"parentGuid,omitempty"`
	ParentType      string `json:"parentType,omitempty"`
	ParentTitle     string `json:"parentTitle,omitempty"`
	ParentThumb     string `json:"parentThumb,omitempty"`

	GrandparentRatingKey string `json:"grandparentRatingKey,omitempty"`
	GrandparentGUID      string `json:"grandparentGuid,omitempty"`
	GrandparentType      string `json:"grandparentType,omitempty"`
	GrandparentTitle     string `json:"grandparentTitle,omitempty"`
	GrandparentThumb     string `json:"grandparentThumb,omitempty"`

	Guid     []GUID   `json:"Guid,omitempty"`
	Genre    []Tag    `json:"Genre,omitempty"`
	Network  []Tag    `json:"Network,omitempty"`
	Role     []Role   `json:"Role,omitempty"`
	Director []Role   `json:"Director,omitempty"`
	Writer   []Role   `json:"Writer,omitempty"`
	Producer []Role   `json:"Producer,omitempty"`
	Rating   []Rating `json:"Rating,omitempty"`
	Image    []Image  `json:"Image,omitempty"`

	Children *MediaContainer `json:"Children,omitempty"`
}
