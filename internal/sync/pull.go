package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/parishkeep/parishsync/internal/logging"
	"github.com/parishkeep/parishsync/internal/models"
	"github.com/parishkeep/parishsync/internal/store/announcements"
	"github.com/parishkeep/parishsync/internal/store/members"
	"github.com/parishkeep/parishsync/internal/store/sermons"
)

// Remote read surfaces for the reference tables, implemented by the
// corresponding remote.*Store types.
type (
	MemberSource interface {
		ListByTenant(ctx context.Context, tenantID string) ([]models.Member, error)
	}
	AnnouncementSource interface {
		ListRecent(ctx context.Context, tenantID string, since time.Time) ([]models.Announcement, error)
	}
	SermonSource interface {
		ListRecent(ctx context.Context, tenantID string, since time.Time) ([]models.Sermon, error)
	}
)

// Puller refreshes the read-only reference cache (members, announcements,
// sermons) from the remote store. The server always wins: every fetched row
// is upserted wholesale by id. Rows absent from the fetch are left in place,
// so remotely unpublished content stays cached until it ages out of the
// recency window.
type Puller struct {
	members       MemberSource
	announcements AnnouncementSource
	sermons       SermonSource

	localMembers       members.Repository
	localAnnouncements announcements.Repository
	localSermons       sermons.Repository

	announcementWindowDays int
	sermonWindowDays       int
	now                    func() time.Time
	log                    logging.Logger
}

func NewPuller(
	memberSrc MemberSource, announcementSrc AnnouncementSource, sermonSrc SermonSource,
	localMembers members.Repository, localAnnouncements announcements.Repository, localSermons sermons.Repository,
	announcementWindowDays, sermonWindowDays int, log logging.Logger,
) *Puller {
	return &Puller{
		members:                memberSrc,
		announcements:          announcementSrc,
		sermons:                sermonSrc,
		localMembers:           localMembers,
		localAnnouncements:     localAnnouncements,
		localSermons:           localSermons,
		announcementWindowDays: announcementWindowDays,
		sermonWindowDays:       sermonWindowDays,
		now:                    time.Now,
		log:                    log,
	}
}

// Pull fetches all three reference tables for one congregation. Unlike the
// push routines there is no per-row isolation: any error aborts the pull and
// is fatal to the whole sync run, because a partial reference snapshot is
// not worth recovering at finer granularity.
func (p *Puller) Pull(ctx context.Context, scopeID string) error {
	now := p.now().UTC()

	ms, err := p.members.ListByTenant(ctx, scopeID)
	if err != nil {
		return fmt.Errorf("failed to fetch members: %w", err)
	}
	for _, m := range ms {
		if err := p.localMembers.UpsertFromRemote(ctx, m); err != nil {
			return fmt.Errorf("failed to cache member %s: %w", m.ID, err)
		}
	}

	since := now.AddDate(0, 0, -p.announcementWindowDays)
	as, err := p.announcements.ListRecent(ctx, scopeID, since)
	if err != nil {
		return fmt.Errorf("failed to fetch announcements: %w", err)
	}
	for _, a := range as {
		if err := p.localAnnouncements.UpsertFromRemote(ctx, a); err != nil {
			return fmt.Errorf("failed to cache announcement %s: %w", a.ID, err)
		}
	}

	sermonSince := now.AddDate(0, 0, -p.sermonWindowDays)
	ss, err := p.sermons.ListRecent(ctx, scopeID, sermonSince)
	if err != nil {
		return fmt.Errorf("failed to fetch sermons: %w", err)
	}
	for _, s := range ss {
		if err := p.localSermons.UpsertFromRemote(ctx, s); err != nil {
			return fmt.Errorf("failed to cache sermon %s: %w", s.ID, err)
		}
	}

	p.log.Debug(ctx, "reference cache refreshed",
		"members", len(ms), "announcements", len(as), "sermons", len(ss))
	return nil
}
