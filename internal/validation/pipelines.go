package validation

// RegisterInput is the raw register request body.
type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	DateOfBirth     string
}

func Register(in RegisterInput) Result {
	return Run(
		Required("name", in.Name),
		Length("name", in.Name, 1, 100),
		Required("email", in.Email),
		Email("email", in.Email),
		Required("password", in.Password),
		Length("password", in.Password, 6, 50),
		StrongPassword("password", in.Password),
		Required("confirm_password", in.ConfirmPassword),
		Length("confirm_password", in.ConfirmPassword, 6, 50),
		StrongPassword("confirm_password", in.ConfirmPassword),
		Matches("confirm_password", in.ConfirmPassword, in.Password, "confirm_password must match password"),
		Required("date_of_birth", in.DateOfBirth),
		ISO8601Date("date_of_birth", in.DateOfBirth),
	)
}

func Login(email, password string) Result {
	return Run(
		Required("email", email),
		Email("email", email),
		Required("password", password),
	)
}

// EmailOnly validates requests carrying just an email, such as forgot-password.
func EmailOnly(email string) Result {
	return Run(
		Required("email", email),
		Email("email", email),
	)
}

func ResetPassword(password, confirmPassword string) Result {
	return Run(
		Required("password", password),
		Length("password", password, 6, 50),
		StrongPassword("password", password),
		Required("confirm_password", confirmPassword),
		Matches("confirm_password", confirmPassword, password, "confirm_password must match password"),
	)
}

func ChangePassword(oldPassword, password, confirmPassword string) Result {
	return Run(
		Required("old_password", oldPassword),
		Required("password", password),
		Length("password", password, 6, 50),
		StrongPassword("password", password),
		Required("confirm_password", confirmPassword),
		Matches("confirm_password", confirmPassword, password, "confirm_password must match password"),
	)
}

// UpdateMeInput holds the optional profile fields of an update request.
type UpdateMeInput struct {
	Name        *string
	DateOfBirth *string
	Bio         *string
	Location    *string
	Website     *string
	Username    *string
	Avatar      *string
	CoverPhoto  *string
}

func UpdateMe(in UpdateMeInput) Result {
	var rules []Rule
	if in.Name != nil {
		rules = append(rules, Required("name", *in.Name), Length("name", *in.Name, 1, 100))
	}
	if in.DateOfBirth != nil {
		rules = append(rules, ISO8601Date("date_of_birth", *in.DateOfBirth))
	}
	if in.Bio != nil {
		rules = append(rules, Length("bio", *in.Bio, 0, 200))
	}
	if in.Location != nil {
		rules = append(rules, Length("location", *in.Location, 0, 200))
	}
	if in.Website != nil {
		rules = append(rules, Length("website", *in.Website, 0, 200),
			Optional(*in.Website, Var("website", *in.Website, "url", KindFormat, "website must be a URL")))
	}
	if in.Username != nil {
		rules = append(rules, Var("username", *in.Username, "username", KindFormat,
			"username must be 4-15 letters, digits or underscores and not only digits"))
	}
	if in.Avatar != nil {
		rules = append(rules, Length("avatar", *in.Avatar, 0, 400))
	}
	if in.CoverPhoto != nil {
		rules = append(rules, Length("cover_photo", *in.CoverPhoto, 0, 400))
	}
	return Run(rules...)
}

func Follow(followedUserID string) Result {
	return Run(
		Required("followed_user_id", followedUserID),
		Var("followed_user_id", followedUserID, "uuid", KindFormat, "followed_user_id is invalid"),
	)
}
