package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"tvbridge/internal/clients/tvdb"
	"tvbridge/internal/plex"
)

const defaultPageSize = 20

// Catalog is the slice of the upstream client the provider depends on.
// Lookup-by-number calls return (nil, nil) when the record does not exist.
type Catalog interface {
	SeriesExtended(ctx context.Context, id int64) (*tvdb.SeriesExtended, error)
	SeasonByNumber(ctx context.Context, seriesID int64, number int, seasonType string) (*tvdb.SeasonExtended, error)
	SeasonExtended(ctx context.Context, seasonID int64) (*tvdb.SeasonExtended, error)
	EpisodeByNumber(ctx context.Context, seriesID int64, season, episode int, seasonType string) (*tvdb.Episode, error)
	EpisodeExtended(ctx context.Context, episodeID int64) (*tvdb.EpisodeExtended, error)
	SeriesArtworks(ctx context.Context, seriesID int64) ([]tvdb.Artwork, error)
	SeasonArtworks(ctx context.Context, seasonID int64) ([]tvdb.Artwork, error)
	Search(ctx context.Context, query string, year int) ([]tvdb.SearchResult, error)
}

// Page is a 1-based page window over a child list.
type Page struct {
	Start int
	Size  int
}

// MetadataOptions carries the per-request hints for GetMetadata.
type MetadataOptions struct {
	IncludeChildren bool
	Country         string
}

// Provider assembles responses by decoding rating keys, fetching the
// upstream records each shape needs and running them through the mapper.
// It holds no per-request state.
type Provider struct {
	catalog    Catalog
	identifier string
	country    string
	logger     zerolog.Logger
}

func NewProvider(catalog Catalog, identifier, country string, logger zerolog.Logger) *Provider {
	return &Provider{
		catalog:    catalog,
		identifier: identifier,
		country:    country,
		logger:     logger.With().Str("component", "provider").Logger(),
	}
}

// GetMetadata resolves one entity by its rating key.
func (p *Provider) GetMetadata(ctx context.Context, key string, opts MetadataOptions) (*plex.MediaContainer, error) {
	rk, err := ParseRatingKey(key)
	if err != nil {
		return nil, err
	}
	country := opts.Country
	if country == "" {
		country = p.country
	}

	series, err := p.fetchSeries(ctx, rk.SeriesID)
	if err != nil {
		return nil, err
	}

	var meta plex.Metadata
	switch rk.Type {
	case plex.TypeShow:
		meta = MapSeries(series, MapSeriesOptions{IncludeChildren: opts.IncludeChildren, Country: country})

	case plex.TypeSeason:
		season, err := p.fetchSeasonByNumber(ctx, rk)
		if err != nil {
			return nil, err
		}
		meta = MapSeason(season, rk.SeriesID, ShowLinkage(&series.Series), MapSeasonOptions{IncludeChildren: opts.IncludeChildren})

	case plex.TypeEpisode:
		episode, err := p.fetchEpisodeByNumber(ctx, rk)
		if err != nil {
			return nil, err
		}
		extended, err := p.catalog.EpisodeExtended(ctx, episode.ID)
		if err != nil {
			if tvdb.IsNotFound(err) {
				return nil, fmt.Errorf("episode %d: %w", episode.ID, ErrNotFound)
			}
			return nil, err
		}
		extended.Episode = *episode
		meta = MapEpisode(extended, rk.SeriesID, ShowLinkage(&series.Series), syntheticSeasonLinkage(rk))
	}

	p.logger.Debug().Str("ratingKey", key).Str("type", rk.Type).Msg("resolved metadata")
	return p.container([]plex.Metadata{meta}, 0, 1), nil
}

// GetChildren lists the seasons of a show or the episodes of a season,
// windowed by page.
func (p *Provider) GetChildren(ctx context.Context, key string, page Page) (*plex.MediaContainer, error) {
	rk, err := ParseRatingKey(key)
	if err != nil {
		return nil, err
	}

	var items []plex.Metadata
	switch rk.Type {
	case plex.TypeShow:
		series, err := p.fetchSeries(ctx, rk.SeriesID)
		if err != nil {
			return nil, err
		}
		show := ShowLinkage(&series.Series)
		for i := range series.Seasons {
			season := series.Seasons[i]
			if !strings.EqualFold(season.Type.Type, tvdb.SeasonOrderOfficial) || season.Number < 0 {
				continue
			}
			items = append(items, MapSeason(&tvdb.SeasonExtended{Season: season}, series.ID, show, MapSeasonOptions{}))
		}

	case plex.TypeSeason:
		series, err := p.fetchSeries(ctx, rk.SeriesID)
		if err != nil {
			return nil, err
		}
		season, err := p.fetchSeasonByNumber(ctx, rk)
		if err != nil {
			return nil, err
		}
		show := ShowLinkage(&series.Series)
		seasonLink := SeasonLinkage(rk.SeriesID, &season.Season)
		for i := range season.Episodes {
			episode := tvdb.EpisodeExtended{Episode: season.Episodes[i]}
			items = append(items, MapEpisode(&episode, rk.SeriesID, show, seasonLink))
		}

	default:
		return nil, fmt.Errorf("children of %s: %w", rk.Type, ErrUnsupported)
	}

	window, offset := paginate(items, page)
	return &plex.MediaContainer{
		Size:       len(window),
		TotalSize:  len(items),
		Offset:     offset,
		Identifier: p.identifier,
		Metadata:   window,
	}, nil
}

// GetGrandchildren lists every episode of a show across its official-order
// seasons. Season episode lists are fetched one season at a time, in
// upstream order, so output order is deterministic.
func (p *Provider) GetGrandchildren(ctx context.Context, key string, page Page) (*plex.MediaContainer, error) {
	rk, err := ParseRatingKey(key)
	if err != nil {
		return nil, err
	}
	if rk.Type != plex.TypeShow {
		return nil, fmt.Errorf("grandchildren of %s: %w", rk.Type, ErrUnsupported)
	}

	series, err := p.fetchSeries(ctx, rk.SeriesID)
	if err != nil {
		return nil, err
	}
	show := ShowLinkage(&series.Series)

	var items []plex.Metadata
	for i := range series.Seasons {
		season := series.Seasons[i]
		if !strings.EqualFold(season.Type.Type, tvdb.SeasonOrderOfficial) || season.Number < 1 {
			continue
		}
		extended, err := p.catalog.SeasonExtended(ctx, season.ID)
		if err != nil {
			return nil, err
		}
		seasonLink := SeasonLinkage(series.ID, &extended.Season)
		for j := range extended.Episodes {
			episode := tvdb.EpisodeExtended{Episode: extended.Episodes[j]}
			items = append(items, MapEpisode(&episode, series.ID, show, seasonLink))
		}
	}

	window, offset := paginate(items, page)
	return &plex.MediaContainer{
		Size:       len(window),
		TotalSize:  len(items),
		Offset:     offset,
		Identifier: p.identifier,
		Metadata:   window,
	}, nil
}

// GetImages lists the artwork of one entity.
func (p *Provider) GetImages(ctx context.Context, key string) (*plex.MediaContainer, error) {
	rk, err := ParseRatingKey(key)
	if err != nil {
		return nil, err
	}

	var images []plex.Image
	switch rk.Type {
	case plex.TypeShow:
		series, err := p.fetchSeries(ctx, rk.SeriesID)
		if err != nil {
			return nil, err
		}
		artworks, err := p.catalog.SeriesArtworks(ctx, rk.SeriesID)
		if err != nil {
			if tvdb.IsNotFound(err) {
				return nil, fmt.Errorf("series %d artworks: %w", rk.SeriesID, ErrNotFound)
			}
			return nil, err
		}
		images = MapAllImages(artworks, series.Name)

	case plex.TypeSeason:
		season, err := p.fetchSeasonByNumber(ctx, rk)
		if err != nil {
			return nil, err
		}
		artworks, err := p.catalog.SeasonArtworks(ctx, season.ID)
		if err != nil {
			return nil, err
		}
		images = MapAllImages(artworks, seasonTitle(&season.Season))

	case plex.TypeEpisode:
		episode, err := p.fetchEpisodeByNumber(ctx, rk)
		if err != nil {
			return nil, err
		}
		images = make([]plex.Image, 0, 1)
		if episode.Image != "" {
			images = append(images, plex.Image{Type: plex.ImageSnapshot, URL: episode.Image, Alt: episode.Name})
		}
	}

	return &plex.MediaContainer{
		Size:       len(images),
		TotalSize:  len(images),
		Offset:     0,
		Identifier: p.identifier,
		Image:      images,
	}, nil
}

func (p *Provider) fetchSeries(ctx context.Context, id int64) (*tvdb.SeriesExtended, error) {
	series, err := p.catalog.SeriesExtended(ctx, id)
	if err != nil {
		if tvdb.IsNotFound(err) {
			return nil, fmt.Errorf("series %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return series, nil
}

func (p *Provider) fetchSeasonByNumber(ctx context.Context, rk RatingKey) (*tvdb.SeasonExtended, error) {
	season, err := p.catalog.SeasonByNumber(ctx, rk.SeriesID, rk.Season, tvdb.SeasonOrderFromTag(rk.SeasonType))
	if err != nil {
		if tvdb.IsNotFound(err) {
			return nil, fmt.Errorf("season %d of series %d: %w", rk.Season, rk.SeriesID, ErrNotFound)
		}
		return nil, err
	}
	if season == nil {
		return nil, fmt.Errorf("season %d of series %d: %w", rk.Season, rk.SeriesID, ErrNotFound)
	}
	return season, nil
}

func (p *Provider) fetchEpisodeByNumber(ctx context.Context, rk RatingKey) (*tvdb.Episode, error) {
	episode, err := p.catalog.EpisodeByNumber(ctx, rk.SeriesID, rk.Season, rk.Episode, tvdb.SeasonOrderFromTag(rk.SeasonType))
	if err != nil {
		if tvdb.IsNotFound(err) {
			return nil, fmt.Errorf("episode s%02de%02d of series %d: %w", rk.Season, rk.Episode, rk.SeriesID, ErrNotFound)
		}
		return nil, err
	}
	if episode == nil {
		return nil, fmt.Errorf("episode s%02de%02d of series %d: %w", rk.Season, rk.Episode, rk.SeriesID, ErrNotFound)
	}
	return episode, nil
}

// syntheticSeasonLinkage builds the parent linkage of an episode without a
// season fetch: title and key derive from the numbers in the episode's own
// rating key.
func syntheticSeasonLinkage(rk RatingKey) ParentLinkage {
	key := EncodeSeasonKey(rk.SeriesID, rk.Season, rk.SeasonType)
	return ParentLinkage{
		RatingKey: key,
		GUID:      BuildGUID(GUIDScheme, plex.TypeSeason, key),
		Title:     fmt.Sprintf("Season %d", rk.Season),
	}
}

func (p *Provider) container(items []plex.Metadata, offset, total int) *plex.MediaContainer {
	return &plex.MediaContainer{
		Size:       len(items),
		TotalSize:  total,
		Offset:     offset,
		Identifier: p.identifier,
		Metadata:   items,
	}
}

// paginate applies a 1-based half-open window. The returned offset is the
// zero-based start index, regardless of whether the window is empty.
func paginate(items []plex.Metadata, page Page) ([]plex.Metadata, int) {
	start := page.Start
	if start <= 0 {
		start = 1
	}
	size := page.Size
	if size <= 0 {
		size = defaultPageSize
	}

	offset := start - 1
	if offset >= len(items) {
		return nil, offset
	}
	end := offset + size
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end], offset
}
