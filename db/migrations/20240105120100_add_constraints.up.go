package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {

		if db.Dialect().Name().String() != "pg" {
			fmt.Printf("\033[1;31m%s\033[0m", "You are not using PostgreSQL. DB level checks can not be enabled!\n")
			return nil
		}
		sql := `
			-- a settled invoice always carries its settlement time and vice versa
				ALTER TABLE orders
				ADD CONSTRAINT check_paid_at CHECK (paid = (paid_at IS NOT NULL));
				ALTER TABLE client_orders
				ADD CONSTRAINT check_paid_at CHECK (paid = (paid_at IS NOT NULL));

			-- amounts are in sats and never negative
				ALTER TABLE orders
				ADD CONSTRAINT check_amount CHECK (amount >= 0);
				ALTER TABLE client_orders
				ADD CONSTRAINT check_amount CHECK (amount >= 0);

				ALTER TABLE relays
				ADD CONSTRAINT fk_relays_owner FOREIGN KEY (owner_id) REFERENCES users (id);
				ALTER TABLE orders
				ADD CONSTRAINT fk_orders_relay FOREIGN KEY (relay_id) REFERENCES relays (id);
				ALTER TABLE orders
				ADD CONSTRAINT fk_orders_user FOREIGN KEY (user_id) REFERENCES users (id);
				ALTER TABLE client_orders
				ADD CONSTRAINT fk_client_orders_relay FOREIGN KEY (relay_id) REFERENCES relays (id);

				CREATE INDEX IF NOT EXISTS index_orders_relay_id ON orders (relay_id);
				CREATE INDEX IF NOT EXISTS index_orders_user_id ON orders (user_id);
				CREATE INDEX IF NOT EXISTS index_client_orders_relay_id ON client_orders (relay_id);
				CREATE INDEX IF NOT EXISTS index_relays_status ON relays (status);
		`
		if _, err := db.Exec(sql); err != nil {
			return err
		}
		return nil
	}, nil)
}
