package core

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"tvbridge/internal/clients/tvdb"
	"tvbridge/internal/plex"
)

// Upstream credit lists can run into the thousands for long-running soaps;
// everything past this cut is noise to the client.
const maxCastSize = 1000

// MapSeriesOptions carries the per-request context MapSeries needs.
type MapSeriesOptions struct {
	IncludeChildren bool
	Country         string
}

// MapSeasonOptions carries the per-request context MapSeason needs.
type MapSeasonOptions struct {
	IncludeChildren bool
}

// ParentLinkage is the slice of an already-resolved ancestor an entity needs
// to describe its parent (or grandparent).
type ParentLinkage struct {
	RatingKey string
	GUID      string
	Title     string
	Thumb     string
}

// ShowLinkage derives the parent linkage of a series record.
func ShowLinkage(s *tvdb.Series) ParentLinkage {
	key := EncodeShowKey(s.ID)
	return ParentLinkage{
		RatingKey: key,
		GUID:      BuildGUID(GUIDScheme, plex.TypeShow, key),
		Title:     s.Name,
		Thumb:     s.Image,
	}
}

// SeasonLinkage derives the parent linkage of a season record.
func SeasonLinkage(seriesID int64, season *tvdb.Season) ParentLinkage {
	tag := tvdb.SeasonTypeTag(season.Type.Type)
	key := EncodeSeasonKey(seriesID, season.Number, tag)
	return ParentLinkage{
		RatingKey: key,
		GUID:      BuildGUID(GUIDScheme, plex.TypeSeason, key),
		Title:     seasonTitle(season),
		Thumb:     season.Image,
	}
}

// MapSeries converts one upstream series record into a show entity.
func MapSeries(s *tvdb.SeriesExtended, opts MapSeriesOptions) plex.Metadata {
	key := EncodeShowKey(s.ID)
	meta := plex.Metadata{
		RatingKey:             key,
		GUID:                  BuildGUID(GUIDScheme, plex.TypeShow, key),
		Type:                  plex.TypeShow,
		Title:                 s.Name,
		Summary:               s.Overview,
		Year:                  airedYear(s.FirstAired),
		OriginallyAvailableAt: s.FirstAired,
		ContentRating:         resolveContentRating(s.ContentRatings, opts.Country),
		Thumb:                 s.Image,
	}
	if s.AverageRuntime > 0 {
		meta.Duration = s.AverageRuntime * 60000
	}

	meta.Image = pickPrimaryImages(s.Artworks, s.Name)
	for _, img := range meta.Image {
		if img.Type == plex.ImageBackground {
			meta.Art = img.URL
		}
		if img.Type == plex.ImageCoverPoster && meta.Thumb == "" {
			meta.Thumb = img.URL
		}
	}

	for _, g := range s.Genres {
		if g.Name != "" {
			meta.Genre = append(meta.Genre, plex.Tag{Tag: g.Name})
		}
	}

	meta.Guid = append(meta.Guid, plex.GUID{ID: fmt.Sprintf("tvdb://%d", s.ID)})
	if imdb := findRemoteID(s.RemoteIDs, tvdb.RemoteIMDB); imdb != "" {
		meta.Guid = append(meta.Guid, plex.GUID{ID: "imdb://" + imdb})
	}
	if tmdb := findRemoteID(s.RemoteIDs, tvdb.RemoteTheMovieDB); tmdb != "" {
		meta.Guid = append(meta.Guid, plex.GUID{ID: "tmdb://" + tmdb})
	}

	meta.Role = mapCast(s.Characters)
	meta.Director, meta.Writer, meta.Producer = mapCrew(s.Characters)

	if s.Score > 0 {
		meta.Rating = []plex.Rating{{
			Image: "thetvdb://image.rating",
			Type:  "audience",
			Value: s.Score,
		}}
	}

	if s.OriginalNetwork != nil && s.OriginalNetwork.Name != "" {
		meta.Network = append(meta.Network, plex.Tag{Tag: s.OriginalNetwork.Name})
		if s.LatestNetwork != nil && s.LatestNetwork.Name != "" && s.LatestNetwork.ID != s.OriginalNetwork.ID {
			meta.Network = append(meta.Network, plex.Tag{Tag: s.LatestNetwork.Name})
		}
	} else if s.LatestNetwork != nil && s.LatestNetwork.Name != "" {
		meta.Network = append(meta.Network, plex.Tag{Tag: s.LatestNetwork.Name})
	}

	if opts.IncludeChildren && len(s.Seasons) > 0 {
		show := ShowLinkage(&s.Series)
		children := make([]plex.Metadata, 0, len(s.Seasons))
		for i := range s.Seasons {
			season := s.Seasons[i]
			if !strings.EqualFold(season.Type.Type, tvdb.SeasonOrderOfficial) {
				continue
			}
			children = append(children, MapSeason(&tvdb.SeasonExtended{Season: season}, s.ID, show, MapSeasonOptions{}))
		}
		meta.Children = &plex.MediaContainer{
			Size:      len(children),
			TotalSize: len(children),
			Metadata:  children,
		}
	}

	return meta
}

// MapSeason converts one upstream season record into a season entity.
// Seasons carry no air date upstream, so originallyAvailableAt stays empty.
func MapSeason(season *tvdb.SeasonExtended, seriesID int64, show ParentLinkage, opts MapSeasonOptions) plex.Metadata {
	tag := tvdb.SeasonTypeTag(season.Type.Type)
	key := EncodeSeasonKey(seriesID, season.Number, tag)
	guid := BuildGUID(GUIDScheme, plex.TypeSeason, key)
	title := seasonTitle(&season.Season)

	meta := plex.Metadata{
		RatingKey: key,
		GUID:      guid,
		Type:      plex.TypeSeason,
		Title:     title,
		Index:     season.Number,
		Thumb:     season.Image,

		ParentRatingKey: show.RatingKey,
		ParentGUID:      show.GUID,
		ParentType:      plex.TypeShow,
		ParentTitle:     show.Title,
		ParentThumb:     show.Thumb,

		Guid: []plex.GUID{{ID: fmt.Sprintf("tvdb://%d", season.ID)}},
	}

	if len(season.Artwork) > 0 {
		meta.Image = MapAllImages(season.Artwork, title)
		if meta.Thumb == "" {
			for _, img := range meta.Image {
				if img.Type == plex.ImageCoverPoster {
					meta.Thumb = img.URL
					break
				}
			}
		}
	} else if season.Image != "" {
		meta.Image = []plex.Image{{Type: plex.ImageCoverPoster, URL: season.Image, Alt: title}}
	}

	if opts.IncludeChildren && len(season.Episodes) > 0 {
		seasonLink := ParentLinkage{RatingKey: key, GUID: guid, Title: title, Thumb: season.Image}
		children := make([]plex.Metadata, 0, len(season.Episodes))
		for i := range season.Episodes {
			episode := tvdb.EpisodeExtended{Episode: season.Episodes[i]}
			children = append(children, MapEpisode(&episode, seriesID, show, seasonLink))
		}
		meta.Children = &plex.MediaContainer{
			Size:      len(children),
			TotalSize: len(children),
			Metadata:  children,
		}
	}

	return meta
}

// MapEpisode converts one upstream episode record into an episode entity.
// Keys are always encoded in the default ordering here; callers that need an
// alternate ordering encode the key themselves.
func MapEpisode(e *tvdb.EpisodeExtended, seriesID int64, show, season ParentLinkage) plex.Metadata {
	key := EncodeEpisodeKey(seriesID, e.SeasonNumber, e.Number, SeasonOrderDefault)
	meta := plex.Metadata{
		RatingKey:             key,
		GUID:                  BuildGUID(GUIDScheme, plex.TypeEpisode, key),
		Type:                  plex.TypeEpisode,
		Title:                 e.Name,
		Summary:               e.Overview,
		Year:                  airedYear(e.Aired),
		OriginallyAvailableAt: e.Aired,
		Index:                 e.Number,
		ParentIndex:           e.SeasonNumber,
		Thumb:                 e.Image,

		ParentRatingKey: season.RatingKey,
		ParentGUID:      season.GUID,
		ParentType:      plex.TypeSeason,
		ParentTitle:     season.Title,
		ParentThumb:     season.Thumb,

		GrandparentRatingKey: show.RatingKey,
		GrandparentGUID:      show.GUID,
		GrandparentType:      plex.TypeShow,
		GrandparentTitle:     show.Title,
		GrandparentThumb:     show.Thumb,
	}
	if e.Runtime > 0 {
		meta.Duration = e.Runtime * 60000
	}
	if e.Image != "" {
		meta.Image = []plex.Image{{Type: plex.ImageSnapshot, URL: e.Image, Alt: e.Name}}
	}

	meta.Guid = append(meta.Guid, plex.GUID{ID: fmt.Sprintf("tvdb://%d", e.ID)})
	if imdb := findRemoteID(e.RemoteIDs, tvdb.RemoteIMDB); imdb != "" {
		meta.Guid = append(meta.Guid, plex.GUID{ID: "imdb://" + imdb})
	}

	meta.Role = mapCast(e.Characters)
	meta.Director, meta.Writer, meta.Producer = mapCrew(e.Characters)

	return meta
}

// MapAllImages emits one image per recognized artwork, in input order.
// Banners are retagged as backgrounds; unrecognized type codes are skipped.
// The result is empty but never nil.
func MapAllImages(artworks []tvdb.Artwork, title string) []plex.Image {
	images := make([]plex.Image, 0, len(artworks))
	for _, a := range artworks {
		kind, ok := artworkKinds[a.Type]
		if !ok {
			continue
		}
		images = append(images, plex.Image{Type: kind.imageType(), URL: a.Image, Alt: title})
	}
	return images
}

type artworkKind int

const (
	kindPoster artworkKind = iota
	kindBackground
	kindLogo
	kindBanner
)

func (k artworkKind) imageType() string {
	switch k {
	case kindPoster:
		return plex.ImageCoverPoster
	case kindLogo:
		return plex.ImageClearLogo
	default:
		return plex.ImageBackground
	}
}

var artworkKinds = map[int]artworkKind{
	tvdb.ArtworkSeriesPoster:     kindPoster,
	tvdb.ArtworkSeasonPoster:     kindPoster,
	tvdb.ArtworkSeriesBackground: kindBackground,
	tvdb.ArtworkSeasonBackground: kindBackground,
	tvdb.ArtworkSeriesClearLogo:  kindLogo,
	tvdb.ArtworkSeriesBanner:     kindBanner,
	tvdb.ArtworkSeasonBanner:     kindBanner,
}

// pickPrimaryImages selects at most one poster, one background and one clear
// logo: the first artwork of each category wins. A banner stands in for the
// background when no true background exists.
func pickPrimaryImages(artworks []tvdb.Artwork, title string) []plex.Image {
	var poster, background, logo, banner *tvdb.Artwork
	for i := range artworks {
		a := &artworks[i]
		kind, ok := artworkKinds[a.Type]
		if !ok {
			continue
		}
		switch kind {
		case kindPoster:
			if poster == nil {
				poster = a
			}
		case kindBackground:
			if background == nil {
				background = a
			}
		case kindLogo:
			if logo == nil {
				logo = a
			}
		case kindBanner:
			if banner == nil {
				banner = a
			}
		}
	}
	if background == nil {
		background = banner
	}

	images := make([]plex.Image, 0, 3)
	if poster != nil {
		images = append(images, plex.Image{Type: plex.ImageCoverPoster, URL: poster.Image, Alt: title})
	}
	if background != nil {
		images = append(images, plex.Image{Type: plex.ImageBackground, URL: background.Image, Alt: title})
	}
	if logo != nil {
		images = append(images, plex.Image{Type: plex.ImageClearLogo, URL: logo.Image, Alt: title})
	}
	return images
}

// mapCast filters the credit list down to actors, orders them by the
// upstream sort weight and re-numbers them 1..N by position.
func mapCast(characters []tvdb.Character) []plex.Role {
	actors := make([]tvdb.Character, 0, len(characters))
	for _, ch := range characters {
		if ch.Type == tvdb.CharacterActor {
			actors = append(actors, ch)
		}
	}
	sort.SliceStable(actors, func(i, j int) bool { return actors[i].Sort < actors[j].Sort })
	if len(actors) > maxCastSize {
		actors = actors[:maxCastSize]
	}

	roles := make([]plex.Role, len(actors))
	for i, ch := range actors {
		roles[i] = plex.Role{
			Tag:   ch.PersonName,
			Role:  ch.Name,
			Thumb: personThumb(ch),
			Order: i + 1,
		}
	}
	return roles
}

// mapCrew partitions the credit list into director, writer and producer
// buckets. Credits with any other type code are dropped.
func mapCrew(characters []tvdb.Character) (directors, writers, producers []plex.Role) {
	for _, ch := range characters {
		credit := plex.Role{Tag: ch.PersonName, Thumb: personThumb(ch)}
		switch ch.Type {
		case tvdb.CharacterDirector:
			directors = append(directors, credit)
		case tvdb.CharacterWriter:
			writers = append(writers, credit)
		case tvdb.CharacterProducer:
			producers = append(producers, credit)
		}
	}
	return directors, writers, producers
}

func personThumb(ch tvdb.Character) string {
	if ch.PersonImgURL != "" {
		return ch.PersonImgURL
	}
	return ch.Image
}

// resolveContentRating matches the stored rating for the requested country.
// US and USA are interchangeable; non-US ratings are prefixed with the
// lowercase country code. No match yields an empty rating.
func resolveContentRating(ratings []tvdb.ContentRating, country string) string {
	want := strings.ToUpper(strings.TrimSpace(country))
	if want == "" {
		want = "USA"
	}
	for _, r := range ratings {
		have := strings.ToUpper(strings.TrimSpace(r.Country))
		if have == want || (usEquivalent(have) && usEquivalent(want)) {
			if usEquivalent(want) {
				return r.Name
			}
			return strings.ToLower(want) + "/" + r.Name
		}
	}
	return ""
}

func usEquivalent(country string) bool {
	return country == "US" || country == "USA"
}

func findRemoteID(ids []tvdb.RemoteID, typeCode int) string {
	for _, remote := range ids {
		if remote.Type == typeCode && remote.ID != "" {
			return remote.ID
		}
	}
	return ""
}

func seasonTitle(season *tvdb.Season) string {
	if season.Name != "" {
		return season.Name
	}
	return fmt.Sprintf("Season %d", season.Number)
}

func airedYear(aired string) int {
	t, err := time.Parse("2006-01-02", aired)
	if err != nil {
		return 0
	}
	return t.Year()
}
