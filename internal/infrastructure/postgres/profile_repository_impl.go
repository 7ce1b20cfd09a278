package postgres

import (
	"context"
	"time"

	"github.com/oksasatya/portfolio-backend/internal/domain/entity"
	"github.com/oksasatya/portfolio-backend/internal/domain/repository"
	"github.com/oksasatya/portfolio-backend/internal/infrastructure/mapper"
)

// profileLockKey serializes upserts so two writers cannot both insert.
const profileLockKey = "profile-singleton"

// ProfileRepository emulates a singleton row: the earliest created row is the profile.
type ProfileRepository struct {
	db  Client
	now func() time.Time
}

func NewProfileRepository(db Client) *ProfileRepository {
	return &ProfileRepository{db: db, now: time.Now}
}

func earliestProfile() *Query {
	return From(TableProfile).Order("created_at").Limit(1)
}

func (r *ProfileRepository) first(ctx context.Context, db Client) (*entity.Profile, error) {
	raws, err := db.Select(ctx, earliestProfile())
	if err != nil {
		return nil, err
	}
	if len(raws) == 0 {
		return nil, nil
	}
	rec, err := decodeOne[mapper.ProfileRecord](raws[0])
	if err != nil {
		return nil, err
	}
	p := mapper.ProfileToDomain(rec)
	return &p, nil
}

func (r *ProfileRepository) Get(ctx context.Context) (*entity.Profile, error) {
	return r.first(ctx, r.db)
}

// Upsert patches the existing profile or inserts the first one. Exactly one
// of update or insert is issued, under a transaction-scoped lock.
func (r *ProfileRepository) Upsert(ctx context.Context, patch entity.ProfilePatch) (*entity.Profile, error) {
	var out *entity.Profile
	err := r.db.Tx(ctx, func(tx Client) error {
		if err := tx.Lock(ctx, profileLockKey); err != nil {
			return err
		}
		existing, err := r.first(ctx, tx)
		if err != nil {
			return err
		}
		set := Values(mapper.ProfilePatchToRecord(patch))
		set["updated_at"] = r.now().UTC()

		if existing == nil {
			raws, err := tx.Insert(ctx, TableProfile, set)
			if err != nil {
				return err
			}
			rec, err := decodeOne[mapper.ProfileRecord](raws[0])
			if err != nil {
				return err
			}
			p := mapper.ProfileToDomain(rec)
			out = &p
			return nil
		}

		if _, err := tx.Update(ctx, From(TableProfile).Eq("id", existing.ID), set); err != nil {
			return err
		}
		q := From(TableProfile).Eq("id", existing.ID)
		raw, err := tx.SelectSingle(ctx, q)
		out, err = selectOne(q, raw, err, mapper.ProfileToDomain)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

var _ repository.ProfileRepository = (*ProfileRepository)(nil)
