package postgres

import (
	"database/sql"

	"chamber-connect-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.ChamberRepository
	repository.MembershipRepository
	repository.BusinessRepository
	repository.EventRepository
	repository.SubscriptionRepository
	repository.QRRepository
	repository.InvitationRepository
	repository.PartnershipRepository
	repository.MessageRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		UserRepository:         NewUserRepository(db),
		ChamberRepository:      NewChamberRepository(db),
		MembershipRepository:   NewMembershipRepository(db),
		BusinessRepository:     NewBusinessRepository(db),
		EventRepository:        NewEventRepository(db),
		SubscriptionRepository: NewSubscriptionRepository(db),
		QRRepository:           NewQRRepository(db),
		InvitationRepository:   NewInvitationRepository(db),
		PartnershipRepository:  NewPartnershipRepository(db),
		MessageRepository:      NewMessageRepository(db),
	}
}
