package db

import "gorm.io/gorm"

type Repositories struct {
	Users         *UserRepository
	CycleProfiles *CycleProfileRepository
	SymptomLogs   *SymptomLogRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:         NewUserRepository(database),
		CycleProfiles: NewCycleProfileRepository(database),
		SymptomLogs:   NewSymptomLogRepository(database),
	}
}
