package clients

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/soft-m/softm-api/internal/platform/db"
)

// SeedData returns the sample local authorities used in development.
func SeedData() []Client {
	return []Client{
		{
			ClientType:       ClientTypeMairie,
			SIRET:            "21920063500014",
			Name:             "Mairie de Saint-Cloud",
			Address:          "Place Charles de Gaulle",
			PostalCode:       "92210",
			City:             "Saint-Cloud",
			Email:            "contact@mairie-saint-cloud.fr",
			Phone:            "+33146021234",
			AccountingSystem: AccountingBergerLevrault,
			CollectivityCode: "COLL92210",
			BudgetCode:       "BUD2024",
			Status:           StatusActive,
		},
		{
			ClientType:       ClientTypeMairie,
			SIRET:            "21750001300014",
			Name:             "Mairie de Paris",
			Address:          "Place de l'Hôtel de Ville",
			PostalCode:       "75004",
			City:             "Paris",
			Email:            "contact@paris.fr",
			Phone:            "+33142762000",
			AccountingSystem: AccountingJVS,
			Status:           StatusActive,
		},
		{
			ClientType: ClientTypeCCAS,
			SIRET:      "21690123400015",
			Name:       "CCAS de Lyon",
			Address:    "1 Place de la Comédie",
			PostalCode: "69001",
			City:       "Lyon",
			Email:      "ccas@lyon.fr",
			Phone:      "+33472103030",
			Status:     StatusDraft,
		},
		{
			ClientType:       ClientTypeSyndicat,
			SIRET:            "25330012500012",
			Name:             "Syndicat Intercommunal du Bassin d'Arcachon",
			Address:          "15 Allée du Parc",
			PostalCode:       "33120",
			City:             "Arcachon",
			Email:            "contact@siba33.fr",
			Phone:            "+33556221234",
			AccountingSystem: AccountingCosoluce,
			Status:           StatusActive,
		},
		{
			ClientType: ClientTypeCentreLoisirs,
			SIRET:      "78945612300016",
			Name:       "Centre de Loisirs Les Petits Princes",
			Address:    "25 Rue des Enfants",
			PostalCode: "44000",
			City:       "Nantes",
			Email:      "contact@petitsprinces.fr",
			Phone:      "+33240123456",
			Status:     StatusSuspended,
		},
	}
}

// Seed replaces every client with SeedData in one transaction. Seeded rows
// keep their listed status; this bypasses the DRAFT rule of Service.Create.
func Seed(ctx context.Context, conn db.TxBeginner) ([]Client, error) {
	var created []Client
	err := db.WithTx(ctx, conn, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM clients`); err != nil {
			return fmt.Errorf("clear clients: %w", err)
		}
		repo := NewRepository(tx)
		for _, c := range SeedData() {
			c.ID = uuid.NewString()
			out, err := repo.Create(ctx, c)
			if err != nil {
				return fmt.Errorf("insert %s: %w", c.SIRET, err)
			}
			created = append(created, out)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("clients: seed: %w", err)
	}
	return created, nil
}
