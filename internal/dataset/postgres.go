package dataset

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gjrich/cintel-04-local/internal/domain"
)

// PostgresProvider loads the dataset from the penguins table.
type PostgresProvider struct {
	pool *pgxpool.Pool
}

// NewPostgresProvider creates a provider backed by the given pool.
func NewPostgresProvider(pool *pgxpool.Pool) *PostgresProvider {
	return &PostgresProvider{pool: pool}
}

// Load reads every penguin row in insertion order. Rows with values
// outside the known enums are skipped with a log line so a single bad
// row cannot prevent startup.
func (p *PostgresProvider) Load(ctx context.Context) (domain.Dataset, error) {
	const query = `
		SELECT id, species, island, bill_length_mm, bill_depth_mm, flipper_length_mm, body_mass_g, sex
		FROM penguins
		ORDER BY id`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("failed to query penguins: %w", err)
	}
	defer rows.Close()

	var records []domain.Record
	for rows.Next() {
		var (
			id             int64
			speciesRaw     string
			islandRaw      string
			billLength     *float64
			billDepth      *float64
			flipperLength  *float64
			bodyMass       *float64
			sexRaw         *string
		)
		if err := rows.Scan(&id, &speciesRaw, &islandRaw, &billLength, &billDepth, &flipperLength, &bodyMass, &sexRaw); err != nil {
			return domain.Dataset{}, fmt.Errorf("failed to scan penguin row: %w", err)
		}

		species, err := domain.ParseSpecies(speciesRaw)
		if err != nil {
			log.Printf("[dataset] skipping penguin %d: %v", id, err)
			continue
		}
		island, err := domain.ParseIsland(islandRaw)
		if err != nil {
			log.Printf("[dataset] skipping penguin %d: %v", id, err)
			continue
		}
		var sexValue string
		if sexRaw != nil {
			sexValue = *sexRaw
		}
		sex, err := domain.ParseSex(sexValue)
		if err != nil {
			log.Printf("[dataset] skipping penguin %d: %v", id, err)
			continue
		}

		records = append(records, domain.Record{
			Species:         species,
			Island:          island,
			BillLengthMM:    billLength,
			BillDepthMM:     billDepth,
			FlipperLengthMM: flipperLength,
			BodyMassG:       bodyMass,
			Sex:             sex,
		})
	}
	if err := rows.Err(); err != nil {
		return domain.Dataset{}, fmt.Errorf("failed to read penguin rows: %w", err)
	}
	if len(records) == 0 {
		return domain.Dataset{}, fmt.Errorf("penguins table is empty")
	}

	return domain.NewDataset(records), nil
}
