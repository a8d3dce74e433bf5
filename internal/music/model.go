package music

import "time"

// Placeholder metadata assigned at upload when the audio carries none.
const (
	DefaultTitle  = "No title"
	DefaultArtist = "Unknown artist"
)

// Track is a stored audio record managed by the bot.
type Track struct {
	ID           int64     `db:"id"`
	FileID       string    `db:"file_id"`
	FileUniqueID string    `db:"file_unique_id"`
	Title        string    `db:"title"`
	Artist       string    `db:"artist"`
	Lyrics       *string   `db:"lyrics"`
	ShortCode    string    `db:"short_code"`
	CreatedAt    time.Time `db:"created_at"`
}

// HasLyrics reports whether the track has non-empty lyrics stored.
func (t Track) HasLyrics() bool {
	return t.Lyrics != nil && *t.Lyrics != ""
}

// ChannelPost records a successful publication of a track to the channel.
type ChannelPost struct {
	ID        int64     `db:"id"`
	MusicID   int64     `db:"music_id"`
	ChannelID int64     `db:"channel_id"`
	MessageID int       `db:"message_id"`
	PostedAt  time.Time `db:"posted_at"`
}
