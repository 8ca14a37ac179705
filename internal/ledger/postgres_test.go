package ledger

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
)

type dummyErr struct{}

func (dummyErr) Error() string { return "dummy" }

func newMockLedger(t *testing.T) (*Postgres, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	cleanup := func() { _ = db.Close() }
	return NewPostgres(db), mock, cleanup
}

// Loose regexes for the two statements inside move(); exact whitespace in the
// query literals is not worth pinning down.
var (
	debitRegex  = regexp.MustCompile(`UPDATE accounts\s+SET balance = balance - \$3\s+WHERE asset = \$1 AND holder = \$2 AND balance >= \$3`)
	creditRegex = regexp.MustCompile(`INSERT INTO accounts \(asset, holder, balance\)\s+VALUES \(\$1, \$2, \$3\)\s+ON CONFLICT \(asset, holder\)\s+DO UPDATE SET balance = accounts\.balance \+ EXCLUDED\.balance`)
)

func TestPostgresTransferIn_SQLMock(t *testing.T) {
	l, mock, done := newMockLedger(t)
	defer done()

	amount := decimal.NewFromInt(40)

	mock.ExpectBegin()
	mock.ExpectExec(debitRegex.String()).
		WithArgs("USDC", "alice", amount).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(creditRegex.String()).
		WithArgs("USDC", Custody, amount).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := l.TransferIn(context.Background(), "USDC", "alice", amount); err != nil {
		t.Fatalf("TransferIn: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresTransferOut_SQLMock(t *testing.T) {
	l, mock, done := newMockLedger(t)
	defer done()

	amount := decimal.NewFromInt(110)

	mock.ExpectBegin()
	mock.ExpectExec(debitRegex.String()).
		WithArgs("USDC", Custody, amount).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(creditRegex.String()).
		WithArgs("USDC", "bob", amount).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := l.TransferOut(context.Background(), "USDC", "bob", amount); err != nil {
		t.Fatalf("TransferOut: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresTransfer_InsufficientFunds(t *testing.T) {
	l, mock, done := newMockLedger(t)
	defer done()

	amount := decimal.NewFromInt(40)

	// Zero affected rows from the guarded debit means the balance was short.
	mock.ExpectBegin()
	mock.ExpectExec(debitRegex.String()).
		WithArgs("USDC", "alice", amount).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := l.TransferIn(context.Background(), "USDC", "alice", amount)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("want ErrInsufficientFunds, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresTransfer_ErrorPaths(t *testing.T) {
	amount := decimal.NewFromInt(5)

	t.Run("begin fails", func(t *testing.T) {
		l, mock, done := newMockLedger(t)
		defer done()
		mock.ExpectBegin().WillReturnError(dummyErr{})
		if err := l.TransferIn(context.Background(), "USDC", "alice", amount); err == nil {
			t.Fatal("expected error on begin")
		}
	})

	t.Run("debit fails", func(t *testing.T) {
		l, mock, done := newMockLedger(t)
		defer done()
		mock.ExpectBegin()
		mock.ExpectExec(debitRegex.String()).WillReturnError(dummyErr{})
		mock.ExpectRollback()
		if err := l.TransferIn(context.Background(), "USDC", "alice", amount); err == nil {
			t.Fatal("expected error on debit")
		}
	})

	t.Run("credit fails", func(t *testing.T) {
		l, mock, done := newMockLedger(t)
		defer done()
		mock.ExpectBegin()
		mock.ExpectExec(debitRegex.String()).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(creditRegex.String()).WillReturnError(dummyErr{})
		mock.ExpectRollback()
		if err := l.TransferIn(context.Background(), "USDC", "alice", amount); err == nil {
			t.Fatal("expected error on credit")
		}
	})

	t.Run("invalid amount never touches the database", func(t *testing.T) {
		l, mock, done := newMockLedger(t)
		defer done()
		if err := l.TransferIn(context.Background(), "USDC", "alice", decimal.Zero); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("want ErrInvalidAmount, got %v", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unexpected database activity: %v", err)
		}
	})
}

func TestPostgresBalance_SQLMock(t *testing.T) {
	l, mock, done := newMockLedger(t)
	defer done()

	selectRegex := regexp.QuoteMeta(`SELECT balance FROM accounts WHERE asset = $1 AND holder = $2`)

	mock.ExpectQuery(selectRegex).
		WithArgs("USDC", "alice").
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow("123.45"))
	got, err := l.Balance(context.Background(), "USDC", "alice")
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if want := decimal.RequireFromString("123.45"); !got.Equal(want) {
		t.Fatalf("balance = %s, want %s", got, want)
	}

	// Missing account reads as zero.
	mock.ExpectQuery(selectRegex).
		WithArgs("USDC", "nobody").
		WillReturnRows(sqlmock.NewRows([]string{"balance"}))
	got, err = l.Balance(context.Background(), "USDC", "nobody")
	if err != nil || !got.IsZero() {
		t.Fatalf("missing account: got %s err=%v, want 0 nil", got, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresCredit_SQLMock(t *testing.T) {
	l, mock, done := newMockLedger(t)
	defer done()

	amount := decimal.NewFromInt(500)
	mock.ExpectExec(creditRegex.String()).
		WithArgs("USDC", "alice", amount).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := l.Credit(context.Background(), "USDC", "alice", amount); err != nil {
		t.Fatalf("Credit: %v", err)
	}
	if err := l.Credit(context.Background(), "USDC", Custody, amount); !errors.Is(err, ErrReservedHolder) {
		t.Fatalf("custody credit: want ErrReservedHolder, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
