package server

import (
	"esports-schedule/internal/config"
	"esports-schedule/internal/snapshots"
)

type snapshotComponents struct {
	store  *snapshots.FSStore
	writer *snapshots.Writer
}

func buildSnapshots(cfg config.Config) snapshotComponents {
	return snapshotComponents{
		store:  snapshots.NewFSStore(cfg.SchedulePath),
		writer: snapshots.NewWriter(cfg.SchedulePath),
	}
}
