package service

import (
	"context"
	"strings"
	"time"

	"github.com/RomanSiu/contacts-api/internal/dto"
	apperrors "github.com/RomanSiu/contacts-api/internal/errors"
	"github.com/RomanSiu/contacts-api/internal/model"
	"github.com/RomanSiu/contacts-api/internal/repository"
	"gorm.io/gorm"
)

// ContactService performs contact CRUD scoped to the owning user. Scoping is
// enforced at the repository query level: a contact owned by another user is
// reported as not found, never leaked.
type ContactService struct {
	repo *repository.ContactRepository
}

func NewContactService(repo *repository.ContactRepository) *ContactService {
	return &ContactService{repo: repo}
}

func (s *ContactService) GetAll(ctx context.Context, userID uint, skip, limit int, filter dto.ContactFilter) ([]dto.ContactResponse, int64, error) {
	contacts, total, err := s.repo.GetAll(ctx, userID, skip, limit, filter)
	if err != nil {
		return nil, 0, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return contactResponses(contacts), total, nil
}

func (s *ContactService) GetByID(ctx context.Context, userID, contactID uint) (*dto.ContactResponse, error) {
	contact, err := s.repo.GetByID(ctx, userID, contactID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrContactNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	response := contactResponse(contact)
	return &response, nil
}

func (s *ContactService) Create(ctx context.Context, userID uint, req *dto.ContactRequest) (*dto.ContactResponse, error) {
	contact := contactFromRequest(userID, req)

	if err := s.repo.Create(ctx, contact); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	response := contactResponse(contact)
	return &response, nil
}

func (s *ContactService) Update(ctx context.Context, userID, contactID uint, req *dto.ContactRequest) (*dto.ContactResponse, error) {
	updated, err := s.repo.Update(ctx, userID, contactID, contactFromRequest(userID, req))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrContactNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	response := contactResponse(updated)
	return &response, nil
}

func (s *ContactService) Delete(ctx context.Context, userID, contactID uint) error {
	if err := s.repo.Delete(ctx, userID, contactID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrContactNotFound
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return nil
}

// UpcomingBirthdays returns contacts with a birthday in the next seven days.
func (s *ContactService) UpcomingBirthdays(ctx context.Context, userID uint) ([]dto.ContactResponse, error) {
	contacts, err := s.repo.UpcomingBirthdays(ctx, userID, time.Now())
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return contactResponses(contacts), nil
}

func contactFromRequest(userID uint, req *dto.ContactRequest) *model.Contact {
	return &model.Contact{
		Name:     strings.TrimSpace(req.Name),
		Surname:  strings.TrimSpace(req.Surname),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:    strings.TrimSpace(req.Phone),
		BornDate: req.BornDate,
		UserID:   userID,
	}
}

func contactResponse(contact *model.Contact) dto.ContactResponse {
	return dto.ContactResponse{
		ID:        contact.ID,
		Name:      contact.Name,
		Surname:   contact.Surname,
		Email:     contact.Email,
		Phone:     contact.Phone,
		BornDate:  contact.BornDate,
		CreatedAt: contact.CreatedAt,
		UpdatedAt: contact.UpdatedAt,
	}
}

func contactResponses(contacts []model.Contact) []dto.ContactResponse {
	responses := make([]dto.ContactResponse, 0, len(contacts))
	for i := range contacts {
		responses = append(responses, contactResponse(&contacts[i]))
	}
	return responses
}
