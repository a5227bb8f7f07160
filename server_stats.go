package mpd

import "time"

// StatsDecoder decodes the response of stats.
var StatsDecoder = FromMap("artists", decodeStats)

// Stats holds the server and database statistics returned by stats.
type Stats struct {
	Artists    uint32
	Albums     uint32
	Songs      uint32
	Uptime     time.Duration
	Playtime   time.Duration
	DBPlaytime time.Duration
	DBUpdate   time.Time
}

func decodeStats(f Fields) (Stats, error) {
	var (
		s   Stats
		err error
	)
	if s.Artists, err = f.Uint("artists"); err != nil {
		return Stats{}, err
	}
	if s.Albums, err = f.Uint("albums"); err != nil {
		return Stats{}, err
	}
	if s.Songs, err = f.Uint("songs"); err != nil {
		return Stats{}, err
	}
	if s.Uptime, err = f.Seconds("uptime"); err != nil {
		return Stats{}, err
	}
	if s.Playtime, err = f.Seconds("playtime"); err != nil {
		return Stats{}, err
	}
	if s.DBPlaytime, err = f.Seconds("db_playtime"); err != nil {
		return Stats{}, err
	}
	if s.DBUpdate, err = f.Unix("db_update"); err != nil {
		return Stats{}, err
	}
	return s, nil
}
