package main

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/pterm/pterm"
	"github.com/samber/lo"

	"github.com/pior/mpd"
	"github.com/pior/mpd/proto"
)

// Printer renders command results.
type Printer interface {
	Print(v any) error
}

// JSONPrinter prints results as indented JSON.
type JSONPrinter struct{}

// Print renders JSON output.
func (JSONPrinter) Print(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// HumanPrinter prints human-readable tables.
type HumanPrinter struct{}

// Print renders human output.
func (HumanPrinter) Print(v any) error {
	switch data := v.(type) {
	case mpd.Status:
		return printStatus(data)
	case *mpd.Song:
		if data == nil {
			pterm.Info.Println("no current song")
			return nil
		}
		return printRecordTable(songPairs(*data))
	case []mpd.Song:
		return printSongs(data)
	case []mpd.Output:
		return printOutputs(data)
	case mpd.Stats:
		return printServerStats(data)
	case []mpd.Playlist:
		return printPlaylists(data)
	case []mpd.Plugin:
		return printPlugins(data)
	case []mpd.Mount:
		return printTable([]string{"MOUNT", "STORAGE"}, lo.Map(data, func(m mpd.Mount, _ int) []string {
			return []string{m.Name, m.Storage}
		}))
	case []mpd.Neighbor:
		return printTable([]string{"URI", "NAME"}, lo.Map(data, func(n mpd.Neighbor, _ int) []string {
			return []string{n.URI, n.Name}
		}))
	case []mpd.Channel:
		return printTable([]string{"CHANNEL"}, lo.Map(data, func(c mpd.Channel, _ int) []string {
			return []string{c.Name}
		}))
	case []mpd.Message:
		return printTable([]string{"CHANNEL", "MESSAGE"}, lo.Map(data, func(m mpd.Message, _ int) []string {
			return []string{m.Channel, m.Message}
		}))
	case []mpd.Subsystem:
		pterm.Println(lo.Map(data, func(s mpd.Subsystem, _ int) string { return string(s) }))
		return nil
	case proto.Record:
		return printRecordTable(data)
	case []proto.Record:
		for i, rec := range data {
			pterm.DefaultSection.Printfln("command %d", i)
			if err := printRecordTable(rec); err != nil {
				return err
			}
		}
		return nil
	default:
		pterm.Println(fmt.Sprint(v))
		return nil
	}
}

func printTable(header []string, rows [][]string) error {
	data := pterm.TableData{header}
	data = append(data, rows...)
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printRecordTable(rec proto.Record) error {
	return printTable([]string{"KEY", "VALUE"}, lo.Map(rec, func(p proto.Pair, _ int) []string {
		return []string{p.Key, p.Value}
	}))
}

func printStatus(s mpd.Status) error {
	rows := [][]string{
		{"state", s.State.String()},
		{"volume", strconv.Itoa(s.Volume)},
		{"repeat", strconv.FormatBool(s.Repeat)},
		{"random", strconv.FormatBool(s.Random)},
		{"single", strconv.FormatBool(s.Single)},
		{"consume", strconv.FormatBool(s.Consume)},
		{"queue", fmt.Sprintf("%d songs (version %d)", s.QueueLen, s.QueueVersion)},
	}
	if s.Song != nil {
		rows = append(rows, []string{"song", fmt.Sprintf("#%d (id %d)", s.Song.Pos, s.Song.ID)})
	}
	if s.Elapsed != nil && s.Duration != nil {
		rows = append(rows, []string{"time", fmt.Sprintf("%s / %s", formatDuration(*s.Elapsed), formatDuration(*s.Duration))})
	}
	if s.Audio != nil {
		rows = append(rows, []string{"audio", fmt.Sprintf("%d Hz, %d bit, %d ch", s.Audio.Rate, s.Audio.Bits, s.Audio.Chans)})
	}
	if s.Bitrate != nil {
		rows = append(rows, []string{"bitrate", fmt.Sprintf("%d kbps", *s.Bitrate)})
	}
	if s.UpdatingDB != nil {
		rows = append(rows, []string{"updating", fmt.Sprintf("job %d", *s.UpdatingDB)})
	}
	if s.Partition != "" {
		rows = append(rows, []string{"partition", s.Partition})
	}
	if s.Error != "" {
		rows = append(rows, []string{"error", pterm.Red(s.Error)})
	}
	return printTable([]string{"FIELD", "VALUE"}, rows)
}

func printSongs(songs []mpd.Song) error {
	if len(songs) == 0 {
		pterm.Info.Println("empty")
		return nil
	}
	return printTable([]string{"POS", "ID", "ARTIST", "TITLE", "TIME", "FILE"}, lo.Map(songs, func(s mpd.Song, _ int) []string {
		pos, id := "", ""
		if s.Place != nil {
			pos = strconv.FormatUint(uint64(s.Place.Pos), 10)
			id = strconv.FormatUint(uint64(s.Place.ID), 10)
		}
		length := ""
		if s.Duration != nil {
			length = formatDuration(*s.Duration)
		}
		return []string{pos, id, s.Tag("Artist"), s.Title, length, s.File}
	}))
}

func songPairs(s mpd.Song) proto.Record {
	rec := proto.Record{{Key: "file", Value: s.File}}
	if s.Title != "" {
		rec = append(rec, proto.Pair{Key: "Title", Value: s.Title})
	}
	if s.Name != "" {
		rec = append(rec, proto.Pair{Key: "Name", Value: s.Name})
	}
	names := lo.Keys(s.Tags)
	slices.Sort(names)
	for _, name := range names {
		for _, v := range s.Tags[name] {
			rec = append(rec, proto.Pair{Key: name, Value: v})
		}
	}
	if s.Duration != nil {
		rec = append(rec, proto.Pair{Key: "Time", Value: formatDuration(*s.Duration)})
	}
	if s.Range != nil {
		rec = append(rec, proto.Pair{Key: "Range", Value: s.Range.String()})
	}
	if s.Place != nil {
		rec = append(rec, proto.Pair{Key: "Pos", Value: strconv.FormatUint(uint64(s.Place.Pos), 10)})
	}
	return rec
}

func printOutputs(outputs []mpd.Output) error {
	return printTable([]string{"ID", "NAME", "PLUGIN", "ENABLED"}, lo.Map(outputs, func(o mpd.Output, _ int) []string {
		enabled := pterm.Gray("no")
		if o.Enabled {
			enabled = pterm.Green("yes")
		}
		return []string{strconv.FormatUint(uint64(o.ID), 10), o.Name, o.Plugin, enabled}
	}))
}

func printServerStats(s mpd.Stats) error {
	return printTable([]string{"FIELD", "VALUE"}, [][]string{
		{"artists", strconv.FormatUint(uint64(s.Artists), 10)},
		{"albums", strconv.FormatUint(uint64(s.Albums), 10)},
		{"songs", strconv.FormatUint(uint64(s.Songs), 10)},
		{"uptime", s.Uptime.String()},
		{"playtime", s.Playtime.String()},
		{"db playtime", s.DBPlaytime.String()},
		{"db updated", s.DBUpdate.Format(time.RFC3339)},
	})
}

func printPlaylists(playlists []mpd.Playlist) error {
	return printTable([]string{"NAME", "MODIFIED"}, lo.Map(playlists, func(p mpd.Playlist, _ int) []string {
		return []string{p.Name, p.LastModified.Format(time.RFC3339)}
	}))
}

func printPlugins(plugins []mpd.Plugin) error {
	return printTable([]string{"PLUGIN", "SUFFIXES", "MIME TYPES"}, lo.Map(plugins, func(p mpd.Plugin, _ int) []string {
		return []string{p.Name, fmt.Sprint(p.Suffixes), fmt.Sprint(p.MimeTypes)}
	}))
}

func formatDuration(d time.Duration) string {
	d = d.Truncate(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}
