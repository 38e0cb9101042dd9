package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/minhtran-ct/collab-view/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// TenantDirectory is the port the access gate authenticates against: it
// answers whether a tenant store exists, reads its secret, and opens a
// bound store handle.
type TenantDirectory interface {
	Exists(ctx context.Context, tenant string) (bool, error)
	Secret(ctx context.Context, tenant string) (string, error)
	Open(tenant string) TenantStore
}

type tenantDirectory struct {
	db *DB
}

func NewTenantDirectory(db *DB) TenantDirectory {
	return &tenantDirectory{db: db}
}

func (d *tenantDirectory) Exists(ctx context.Context, tenant string) (bool, error) {
	names, err := d.db.Client.ListDatabaseNames(ctx, bson.M{"name": tenant})
	if err != nil {
		return false, unavailable("list databases", err)
	}
	return len(names) > 0, nil
}

// Secret returns models.ErrNotFound when the tenant has no Authenticator
// record; the gate turns that into a configuration error.
func (d *tenantDirectory) Secret(ctx context.Context, tenant string) (string, error) {
	coll := d.db.Client.Database(tenant).Collection(models.AuthenticatorCollection)

	var auth models.Authenticator
	err := coll.FindOne(ctx, bson.M{}).Decode(&auth)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", models.ErrNotFound
	}
	if err != nil {
		return "", unavailable("read authenticator", err)
	}
	return auth.Password, nil
}

func (d *tenantDirectory) Open(tenant string) TenantStore {
	return &tenantStore{db: d.db.Client.Database(tenant)}
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, models.ErrStoreUnavailable, err)
}
