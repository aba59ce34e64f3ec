package core

import (
	"fmt"
	"regexp"
	"strconv"

	"tvbridge/internal/plex"
)

// GUIDScheme prefixes every guid URI handed to the client.
const GUIDScheme = "tvdb"

// SeasonOrderDefault is the ordering tag of the official season numbering.
// Keys in the default ordering omit the tag segment.
const SeasonOrderDefault = "default"

// RatingKey is the decoded form of an opaque identifier.
type RatingKey struct {
	Type       string
	SeriesID   int64
	Season     int
	Episode    int
	SeasonType string
}

// One anchored pattern per key form. The tag segment must start with a
// letter, so a key can never match both the tagged and the untagged form of
// the next-longer shape.
var (
	reShowKey       = regexp.MustCompile(`^tvdb-show-(\d+)$`)
	reSeasonKey     = regexp.MustCompile(`^tvdb-season-(\d+)-(\d+)$`)
	reSeasonTagKey  = regexp.MustCompile(`^tvdb-season-(\d+)-(\d+)-([a-z][a-z0-9]*)$`)
	reEpisodeKey    = regexp.MustCompile(`^tvdb-episode-(\d+)-(\d+)-(\d+)$`)
	reEpisodeTagKey = regexp.MustCompile(`^tvdb-episode-(\d+)-(\d+)-(\d+)-([a-z][a-z0-9]*)$`)
)

// EncodeShowKey builds the rating key for a series.
func EncodeShowKey(seriesID int64) string {
	return fmt.Sprintf("tvdb-show-%d", seriesID)
}

// EncodeSeasonKey builds the rating key for a season. The ordering tag is
// omitted for the default ordering.
func EncodeSeasonKey(seriesID int64, season int, seasonType string) string {
	if seasonType == "" || seasonType == SeasonOrderDefault {
		return fmt.Sprintf("tvdb-season-%d-%d", seriesID, season)
	}
	return fmt.Sprintf("tvdb-season-%d-%d-%s", seriesID, season, seasonType)
}

// EncodeEpisodeKey builds the rating key for an episode.
func EncodeEpisodeKey(seriesID int64, season, episode int, seasonType string) string {
	if seasonType == "" || seasonType == SeasonOrderDefault {
		return fmt.Sprintf("tvdb-episode-%d-%d-%d", seriesID, season, episode)
	}
	return fmt.Sprintf("tvdb-episode-%d-%d-%d-%s", seriesID, season, episode, seasonType)
}

// ParseRatingKey decodes an opaque identifier into its parts. Keys that match
// none of the five forms fail with ErrInvalidRatingKey.
func ParseRatingKey(key string) (RatingKey, error) {
	if m := reShowKey.FindStringSubmatch(key); m != nil {
		return RatingKey{
			Type:       plex.TypeShow,
			SeriesID:   mustInt64(m[1]),
			SeasonType: SeasonOrderDefault,
		}, nil
	}
	if m := reSeasonTagKey.FindStringSubmatch(key); m != nil {
		return RatingKey{
			Type:       plex.TypeSeason,
			SeriesID:   mustInt64(m[1]),
			Season:     mustInt(m[2]),
			SeasonType: m[3],
		}, nil
	}
	if m := reSeasonKey.FindStringSubmatch(key); m != nil {
		return RatingKey{
			Type:       plex.TypeSeason,
			SeriesID:   mustInt64(m[1]),
			Season:     mustInt(m[2]),
			SeasonType: SeasonOrderDefault,
		}, nil
	}
	if m := reEpisodeTagKey.FindStringSubmatch(key); m != nil {
		return RatingKey{
			Type:       plex.TypeEpisode,
			SeriesID:   mustInt64(m[1]),
			Season:     mustInt(m[2]),
			Episode:    mustInt(m[3]),
			SeasonType: m[4],
		}, nil
	}
	if m := reEpisodeKey.FindStringSubmatch(key); m != nil {
		return RatingKey{
			Type:       plex.TypeEpisode,
			SeriesID:   mustInt64(m[1]),
			Season:     mustInt(m[2]),
			Episode:    mustInt(m[3]),
			SeasonType: SeasonOrderDefault,
		}, nil
	}
	return RatingKey{}, fmt.Errorf("%w: %q", ErrInvalidRatingKey, key)
}

// String re-encodes the key. Parse and String round-trip losslessly.
func (k RatingKey) String() string {
	switch k.Type {
	case plex.TypeSeason:
		return EncodeSeasonKey(k.SeriesID, k.Season, k.SeasonType)
	case plex.TypeEpisode:
		return EncodeEpisodeKey(k.SeriesID, k.Season, k.Episode, k.SeasonType)
	default:
		return EncodeShowKey(k.SeriesID)
	}
}

// BuildGUID assembles the composite URI for an entity,
// e.g. "tvdb://show/tvdb-show-152831".
func BuildGUID(scheme, typeWord, key string) string {
	return fmt.Sprintf("%s://%s/%s", scheme, typeWord, key)
}

func mustInt64(s string) int64 {
	v, _ := strconv.ParseInt(s, 10, 64)
	return v
}

func mustInt(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}
