package schedule

// PickFormat chooses the format for a new showtime of movie in auditorium:
// the first movie format the auditorium supports. When none match it returns
// the movie's first format, which then fails the compatibility check.
// Returns "" for a movie without formats.
func PickFormat(movie Movie, auditorium Auditorium) string {
	for _, f := range movie.Formats {
		if auditorium.SupportsFormat(f) {
			return f
		}
	}
	if len(movie.Formats) == 0 {
		return ""
	}
	return movie.Formats[0]
}

// Compatible returns true if format is supported by both movie and auditorium.
func Compatible(format string, movie Movie, auditorium Auditorium) bool {
	return format != "" && movie.SupportsFormat(format) && auditorium.SupportsFormat(format)
}
