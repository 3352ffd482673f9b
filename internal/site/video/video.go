// Copyright (c) 2026 Modhaven. All rights reserved.

/*
Package video implements the dev server's community video endpoints: the
server half of the gallery moderation contract.

It enforces the rules the interaction engine reacts to: one report per user
per video (409 on repeats), a single featured video per mod (403 without the
moderator capability), a daily submission quota (429 beyond it), and duplicate
submission detection (409).

Architecture:

  - Service: Business rules and capability checks.
  - Store: In-memory records behind an interface; the production site keeps
    these in its own persistence layer, which is outside this repo.
  - Handler: Thin chi-based transport layer.
*/
package video

import "time"

// Video is one submitted community video.
type Video struct {
	ID            string    `json:"id"`
	ModID         string    `json:"mod_id"`
	YouTubeID     string    `json:"youtube_id"`
	SubmitterID   string    `json:"submitter_id"`
	SubmitterName string    `json:"submitter_name"`
	Featured      bool      `json:"is_featured"`
	ReportCount   int       `json:"report_count"`
	CreatedAt     time.Time `json:"created_at"`
}
