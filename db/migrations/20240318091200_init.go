package migrations

import (
	"context"

	"github.com/hisab-app/hisab-server/db/models"
	"github.com/uptrace/bun"
)

/* Since this init will reflect the latest model fields when run on a fresh db
make sure that when you add/remove columns in subsequent migrations
IfNotExists/IfExists is used, otherwise it's going to result in errors.
*/
func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {

		if _, err := db.NewCreateTable().Model((*models.Account)(nil)).Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().
			Model((*models.Entry)(nil)).
			ForeignKey(`("account_id") REFERENCES "accounts" ("id") ON DELETE CASCADE`).
			Exec(ctx); err != nil {
			return err
		}

		// name/code uniqueness applies to live rows only, so a deleted
		// account releases them for reuse.
		if _, err := db.NewCreateIndex().
			Model((*models.Account)(nil)).
			Index("accounts_name_live_idx").
			Column("name").
			Unique().
			Where("deleted_at IS NULL").
			Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateIndex().
			Model((*models.Account)(nil)).
			Index("accounts_code_live_idx").
			Column("code").
			Unique().
			Where("deleted_at IS NULL").
			Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateIndex().
			Model((*models.Entry)(nil)).
			Index("entries_account_id_idx").
			Column("account_id").
			Exec(ctx); err != nil {
			return err
		}

		return nil
	}, nil)
}
