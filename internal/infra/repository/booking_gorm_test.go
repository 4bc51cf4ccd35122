package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var errLookupFailed = errors.New("connection reset")

// failingConn fails every statement with errLookupFailed and counts how
// many reads and writes were attempted.
type failingConn struct {
	queries int
	execs   int
}

func (c *failingConn) Prepare(string) (driver.Stmt, error) { return nil, errLookupFailed }
func (c *failingConn) Close() error                        { return nil }
func (c *failingConn) Begin() (driver.Tx, error)           { return nil, errLookupFailed }

func (c *failingConn) QueryContext(context.Context, string, []driver.NamedValue) (driver.Rows, error) {
	c.queries++
	return nil, errLookupFailed
}

func (c *failingConn) ExecContext(context.Context, string, []driver.NamedValue) (driver.Result, error) {
	c.execs++
	return nil, errLookupFailed
}

var (
	_ driver.QueryerContext = (*failingConn)(nil)
	_ driver.ExecerContext  = (*failingConn)(nil)
)

type failingDriver struct{}

func (failingDriver) Open(string) (driver.Conn, error) { return nil, errLookupFailed }

type failingConnector struct {
	conn *failingConn
}

func (c *failingConnector) Connect(context.Context) (driver.Conn, error) { return c.conn, nil }
func (c *failingConnector) Driver() driver.Driver                        { return failingDriver{} }

func failingGormDB(t *testing.T) (*gorm.DB, *failingConn) {
	t.Helper()

	conn := &failingConn{}
	sqlDB := sql.OpenDB(&failingConnector{conn: conn})

	db, err := gorm.Open(
		postgres.New(postgres.Config{Conn: sqlDB}),
		&gorm.Config{Logger: logger.Discard},
	)
	if err != nil {
		t.Fatalf("open gorm over stub driver: %v", err)
	}

	return db, conn
}

func TestGetOrCreateCustomer_LookupFailureDoesNotCreate(t *testing.T) {
	db, conn := failingGormDB(t)
	repo := NewBookingGormRepository(db)

	customer, err := repo.GetOrCreateCustomer(
		context.Background(),
		uuid.New(),
		"Mere",
		"+64211234567",
		"mere@example.com",
	)

	if !errors.Is(err, errLookupFailed) {
		t.Fatalf("want the lookup error surfaced, got %v", err)
	}
	if customer != nil {
		t.Fatal("no customer may be returned when the lookup fails")
	}

	// A transient read failure is not "not found": the insert must
	// never be issued, or retries would mint duplicate customers.
	if conn.queries != 1 {
		t.Errorf("lookup query count = %d, want 1", conn.queries)
	}
	if conn.execs != 0 {
		t.Errorf("write count = %d, want 0", conn.execs)
	}
}
