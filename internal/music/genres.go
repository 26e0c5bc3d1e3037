package music

import (
	"context"

	"github.com/rs/zerolog/log"
)

// genreStats counts the genre rows resolveGenres dropped.
type genreStats struct {
	Nameless  int // rows with a NULL name
	Phantom   int // rows with no member among the loaded songs
	Unclaimed int // songs placed in the unknown genre
}

// resolveGenres builds the genres of the loaded songs. Every song ends up in
// exactly one genre: the first genre row listing it, or the unknown genre.
func resolveGenres(ctx context.Context, rows Rows, songs []*Song, unknownGenre string) ([]*Genre, genreStats, error) {
	var stats genreStats

	defs, err := rows.Genres(ctx)
	if err != nil {
		return nil, stats, err
	}

	byID := make(map[int64]*Song, len(songs))
	for _, s := range songs {
		byID[s.ID] = s
	}
	claimed := make(map[int64]bool, len(songs))

	genres := make([]*Genre, 0, len(defs)+1)
	for _, def := range defs {
		if !def.Name.Valid {
			stats.Nameless++
			continue
		}

		ids, err := rows.GenreMembers(ctx, def.ID)
		if err != nil {
			return nil, stats, err
		}

		var members []*Song
		for _, id := range ids {
			s, ok := byID[id]
			if !ok || claimed[id] {
				continue
			}
			claimed[id] = true
			members = append(members, s)
		}
		if len(members) == 0 {
			stats.Phantom++
			log.Debug().Int64("genre_id", def.ID).Str("name", def.Name.String).Msg("dropping empty genre")
			continue
		}

		display, ok := id3GenreName(def.Name.String)
		if !ok {
			display = def.Name.String
		}
		genres = append(genres, &Genre{
			ID:          def.ID,
			Name:        def.Name.String,
			DisplayName: display,
			Songs:       members,
		})
	}

	var orphans []*Song
	for _, s := range songs {
		if !claimed[s.ID] {
			orphans = append(orphans, s)
		}
	}
	if len(orphans) > 0 {
		stats.Unclaimed = len(orphans)
		genres = append(genres, &Genre{
			Name:        UnknownSentinel,
			DisplayName: unknownGenre,
			Songs:       orphans,
		})
	}
	return genres, stats, nil
}
