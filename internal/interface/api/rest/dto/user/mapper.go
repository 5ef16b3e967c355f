package user

import (
	"hotel-users-api/internal/domain/user"
)

func ToResponseUser(uDomain user.User) User {
	return User{
		ID:        uDomain.ID,
		Name:      uDomain.Name,
		Email:     uDomain.Email,
		CPF:       uDomain.CPF,
		Phone:     uDomain.Phone,
		Address:   uDomain.Address,
		CreatedAt: uDomain.CreatedAt,
		Active:    uDomain.Active,
		DeletedAt: uDomain.DeletedAt,
		DeletedBy: uDomain.DeletedBy,
	}
}

func ToResponseUsers(usDomain user.Users) Users {
	us := make(Users, len(usDomain))
	for idx, u := range usDomain {
		us[idx] = ToResponseUser(*u)
	}

	return us
}

func ToListData(p *user.Page) ListData {
	return ListData{
		Users: ToResponseUsers(p.Users),
		Pagination: Pagination{
			Page:       p.Page,
			Limit:      p.Limit,
			Total:      p.Total,
			TotalPages: p.TotalPages,
		},
	}
}

func ToSearchData(us user.Users, q string, page, limit int) SearchData {
	return SearchData{
		Users: ToResponseUsers(us),
		Query: q,
		Pagination: SearchPagination{
			Page:  page,
			Limit: limit,
			Total: len(us),
		},
	}
}
