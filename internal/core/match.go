package core

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"tvbridge/internal/plex"
)

// Match searches the upstream catalog for series and maps each hit to a thin
// show entity the client can pick from. No hits is an empty container, not
// an error.
func (p *Provider) Match(ctx context.Context, title string, year int) (*plex.MediaContainer, error) {
	results, err := p.catalog.Search(ctx, title, year)
	if err != nil {
		return nil, err
	}

	items := make([]plex.Metadata, 0, len(results))
	for _, r := range results {
		if r.Type != "" && !strings.EqualFold(r.Type, "series") {
			continue
		}
		id, err := strconv.ParseInt(r.TVDBID, 10, 64)
		if err != nil || id == 0 {
			continue
		}

		key := EncodeShowKey(id)
		meta := plex.Metadata{
			RatingKey: key,
			GUID:      BuildGUID(GUIDScheme, plex.TypeShow, key),
			Type:      plex.TypeShow,
			Title:     r.Name,
			Summary:   r.Overview,
			Thumb:     r.ImageURL,
			Guid:      []plex.GUID{{ID: fmt.Sprintf("tvdb://%d", id)}},
		}
		if y, err := strconv.Atoi(r.Year); err == nil {
			meta.Year = y
		}
		items = append(items, meta)
	}

	p.logger.Debug().Str("title", title).Int("hits", len(items)).Msg("match search complete")
	return p.container(items, 0, len(items)), nil
}
