package store

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newTestStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{})
	if err != nil {
		t.Fatalf("gorm.Open: %v", err)
	}
	return New(db), mock
}

func TestClaimStripeCustomerIDWinsEmptySlot(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "users" SET "stripe_customer_id"=$1`)).
		WithArgs("cus_new", sqlmock.AnyArg(), 42).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	got, err := s.ClaimStripeCustomerID(42, "cus_new")
	if err != nil {
		t.Fatalf("ClaimStripeCustomerID: %v", err)
	}
	if got != "cus_new" {
		t.Fatalf("claimed id = %q, want cus_new", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestClaimStripeCustomerIDLosesToEarlierClaim(t *testing.T) {
	s, mock := newTestStore(t)

	// The conditional update touches no row because another request
	// already wrote a customer id. The winner's id must come back.
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "users" SET "stripe_customer_id"=$1`)).
		WithArgs("cus_loser", sqlmock.AnyArg(), 42).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE id = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "stripe_customer_id"}).AddRow(42, "cus_winner"))

	got, err := s.ClaimStripeCustomerID(42, "cus_loser")
	if err != nil {
		t.Fatalf("ClaimStripeCustomerID: %v", err)
	}
	if got != "cus_winner" {
		t.Fatalf("claimed id = %q, want cus_winner", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestClaimStripeCustomerIDFailsWhenNothingClaimed(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "users" SET "stripe_customer_id"=$1`)).
		WithArgs("cus_new", sqlmock.AnyArg(), 42).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE id = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "stripe_customer_id"}).AddRow(42, nil))

	if _, err := s.ClaimStripeCustomerID(42, "cus_new"); err == nil {
		t.Fatal("expected error when the row holds no customer id")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMemberRole(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "project_members" WHERE project_id = $1 AND user_id = $2`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "project_id", "user_id", "role"}).
			AddRow("m-1", "p-1", 42, "owner"))

	role, err := s.MemberRole("p-1", 42)
	if err != nil {
		t.Fatalf("MemberRole: %v", err)
	}
	if role != "owner" {
		t.Fatalf("role = %q, want owner", role)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestStorageAddonsByIDs(t *testing.T) {
	t.Run("empty input skips the query", func(t *testing.T) {
		s, mock := newTestStore(t)

		addons, err := s.StorageAddonsByIDs(nil)
		if err != nil {
			t.Fatalf("StorageAddonsByIDs: %v", err)
		}
		if addons != nil {
			t.Fatalf("addons = %v, want nil", addons)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet expectations: %v", err)
		}
	})

	t.Run("filters on id and active", func(t *testing.T) {
		s, mock := newTestStore(t)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "storage_addons" WHERE id IN ($1,$2) AND active = $3`)).
			WithArgs("storage-10gb", "storage-50gb", true).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "storage_gb", "price_cents", "active"}).
				AddRow("storage-10gb", "Extra storage 10 GB", 10, 900, true))

		addons, err := s.StorageAddonsByIDs([]string{"storage-10gb", "storage-50gb"})
		if err != nil {
			t.Fatalf("StorageAddonsByIDs: %v", err)
		}
		if len(addons) != 1 {
			t.Fatalf("len(addons) = %d, want 1 (retired ids drop out)", len(addons))
		}
		if addons[0].StorageGB != 10 {
			t.Fatalf("StorageGB = %d, want 10", addons[0].StorageGB)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet expectations: %v", err)
		}
	})
}
