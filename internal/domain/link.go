package domain

import (
	"net/url"
	"strconv"
	"strings"
)

// JobFromQuery builds a job from the details-by-link query surface.
// All parameters are optional; url.Values are already decoded.
func JobFromQuery(q url.Values) Job {
	job := Job{
		URL:           strings.TrimSpace(q.Get("url")),
		Title:         strings.TrimSpace(q.Get("title")),
		Board:         strings.TrimSpace(q.Get("board")),
		Qualification: strings.TrimSpace(q.Get("qual")),
		LastDate:      strings.TrimSpace(q.Get("lastDate")),
		Source:        strings.TrimSpace(q.Get("source")),
		State:         strings.TrimSpace(q.Get("state")),
	}
	if n, err := strconv.Atoi(strings.ReplaceAll(q.Get("postCount"), ",", "")); err == nil && n > 0 {
		job.PostCount = &n
	}
	return job
}

// LinkQuery encodes a job into the details-by-link query surface
func LinkQuery(job Job) url.Values {
	q := url.Values{}
	set := func(key, val string) {
		if val != "" {
			q.Set(key, val)
		}
	}
	set("url", job.URL)
	set("title", job.Title)
	set("board", job.Board)
	set("qual", job.Qualification)
	set("lastDate", job.LastDate)
	set("source", job.Source)
	set("state", job.State)
	if job.PostCount != nil {
		q.Set("postCount", strconv.Itoa(*job.PostCount))
	}
	return q
}
