package postgres

import (
	"fmt"
	"time"
)

const (
	poolHealthCheckPeriod = time.Minute
	poolMaxConnLifetime   = time.Hour
	poolMaxConnIdleTime   = 30 * time.Minute
	dbPingTimeout         = 5 * time.Second

	errDrinkNotFound = "drink not found"
	errDrinkExists   = "drink with this title already exists"

	errFailedParseDatabaseConfigFmt  = "failed to parse database config: %w"
	errFailedCreateConnectionPoolFmt = "failed to create connection pool: %w"
	errFailedPingDatabaseFmt         = "failed to ping database: %w"
	errFailedEnsureSchemaFmt         = "failed to ensure schema: %w"

	errFailedCreateDrinkFmt  = "failed to create drink: %w"
	errFailedListDrinksFmt   = "failed to list drinks: %w"
	errFailedScanDrinkFmt    = "failed to scan drink: %w"
	errIterateDrinksFmt      = "error iterating drinks: %w"
	errFailedUpdateDrinkFmt  = "failed to update drink: %w"
	errFailedDeleteDrinkFmt  = "failed to delete drink: %w"
	errFailedEncodeRecipeFmt = "failed to encode recipe: %w"
	errFailedDecodeRecipeFmt = "failed to decode recipe: %w"
)

var (
	errFailedParseDatabaseConfig  = func(err error) error { return fmt.Errorf(errFailedParseDatabaseConfigFmt, err) }
	errFailedCreateConnectionPool = func(err error) error { return fmt.Errorf(errFailedCreateConnectionPoolFmt, err) }
	errFailedPingDatabase         = func(err error) error { return fmt.Errorf(errFailedPingDatabaseFmt, err) }
	errFailedEnsureSchema         = func(err error) error { return fmt.Errorf(errFailedEnsureSchemaFmt, err) }
	errFailedCreateDrink          = func(err error) error { return fmt.Errorf(errFailedCreateDrinkFmt, err) }
	errFailedListDrinks           = func(err error) error { return fmt.Errorf(errFailedListDrinksFmt, err) }
	errFailedScanDrink            = func(err error) error { return fmt.Errorf(errFailedScanDrinkFmt, err) }
	errIterateDrinks              = func(err error) error { return fmt.Errorf(errIterateDrinksFmt, err) }
	errFailedUpdateDrink          = func(err error) error { return fmt.Errorf(errFailedUpdateDrinkFmt, err) }
	errFailedDeleteDrink          = func(err error) error { return fmt.Errorf(errFailedDeleteDrinkFmt, err) }
	errFailedEncodeRecipe         = func(err error) error { return fmt.Errorf(errFailedEncodeRecipeFmt, err) }
	errFailedDecodeRecipe         = func(err error) error { return fmt.Errorf(errFailedDecodeRecipeFmt, err) }
)
