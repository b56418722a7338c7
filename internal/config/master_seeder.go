package config

import (
	"errors"
	"log"

	"github.com/SDNATH-Git/blood-donation-serverset/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// SeedMasterData seeds the districts/upazilas master tables. The list
// is not exhaustive; deployments load the full set from their own
// fixtures and this seed only guarantees the search filters have data
// on a fresh database.
func SeedMasterData(db *gorm.DB) error {
	if err := seedDistricts(db); err != nil {
		return err
	}
	log.Println("Master data seeded")
	return nil
}

var seedLocations = map[string][]string{
	"Dhaka":      {"Dhamrai", "Dohar", "Keraniganj", "Nawabganj", "Savar"},
	"Chittagong": {"Anwara", "Banshkhali", "Boalkhali", "Chandanaish", "Fatikchhari"},
	"Rajshahi":   {"Bagha", "Bagmara", "Charghat", "Durgapur", "Godagari"},
	"Khulna":     {"Batiaghata", "Dacope", "Dumuria", "Dighalia", "Koyra"},
	"Barishal":   {"Agailjhara", "Babuganj", "Bakerganj", "Banaripara", "Gaurnadi"},
	"Sylhet":     {"Balaganj", "Beanibazar", "Bishwanath", "Companiganj", "Fenchuganj"},
	"Rangpur":    {"Badarganj", "Gangachhara", "Kaunia", "Mithapukur", "Pirgachha"},
	"Mymensingh": {"Bhaluka", "Dhobaura", "Fulbaria", "Gafargaon", "Gauripur"},
}

func seedDistricts(db *gorm.DB) error {
	for name, upazilas := range seedLocations {
		var district models.District
		err := db.Where("name = ?", name).First(&district).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			district = models.District{Name: name}
			if err := db.Create(&district).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		for _, uname := range upazilas {
			var existing models.Upazila
			err := db.Where("district_id = ? AND name = ?", district.ID, uname).First(&existing).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				if err := db.Create(&models.Upazila{DistrictID: district.ID, Name: uname}).Error; err != nil {
					return err
				}
			} else if err != nil {
				return err
			}
		}
	}
	return nil
}
