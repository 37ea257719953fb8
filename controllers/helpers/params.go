package helpers

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/goleiroon/goleiroon/models"
	"github.com/goleiroon/goleiroon/types"
)

func validPixKeyType(val types.PixKeyType) bool {
	switch val {
	case "", types.PixKeyCPF, types.PixKeyCNPJ, types.PixKeyEmail, types.PixKeyPhone, types.PixKeyRandom:
		return true
	default:
		return false
	}
}

func positiveOrEmpty(val decimal.NullDecimal) bool {
	return !val.Valid || val.Decimal.IsPositive()
}

type RegisterParams struct {
	Name       string              `json:"nome" form:"nome" validate:"required"`
	Email      string              `json:"email" form:"email" validate:"required|email"`
	Password   string              `json:"senha" form:"senha" validate:"required|minLen:6"`
	Phone      string              `json:"telefone" form:"telefone"`
	Type       types.UserType      `json:"tipo" form:"tipo" validate:"required|ValidateType"`
	City       string              `json:"cidade" form:"cidade"`
	PixKey     string              `json:"chave_pix" form:"chave_pix"`
	PixKeyType types.PixKeyType    `json:"tipo_chave_pix" form:"tipo_chave_pix" validate:"ValidatePixKeyType"`
	MatchPrice decimal.NullDecimal `json:"valor_partida" form:"valor_partida" validate:"ValidateMatchPrice"`
}

func (p RegisterParams) Messages() map[string]string {
	return VaildateMessage("identity.user")
}

func (p RegisterParams) ValidateType(val types.UserType) bool {
	return val == types.UserTypeOrganizer || val == types.UserTypeGoalkeeper
}

func (p RegisterParams) ValidatePixKeyType(val types.PixKeyType) bool {
	return validPixKeyType(val)
}

func (p RegisterParams) ValidateMatchPrice(val decimal.NullDecimal) bool {
	return positiveOrEmpty(val)
}

func (p RegisterParams) ToModel() models.RegisterParams {
	return models.RegisterParams{
		Name:       p.Name,
		Email:      p.Email,
		Password:   p.Password,
		Phone:      p.Phone,
		Type:       p.Type,
		City:       p.City,
		PixKey:     p.PixKey,
		PixKeyType: string(p.PixKeyType),
		MatchPrice: p.MatchPrice,
	}
}

type LoginParams struct {
	Email    string `json:"email" form:"email" validate:"required|email"`
	Password string `json:"senha" form:"senha" validate:"required"`
}

func (p LoginParams) Messages() map[string]string {
	return VaildateMessage("identity.session")
}

type ProfileParams struct {
	Name       *string             `json:"nome" form:"nome"`
	Phone      *string             `json:"telefone" form:"telefone"`
	City       *string             `json:"cidade" form:"cidade"`
	PixKey     *string             `json:"chave_pix" form:"chave_pix"`
	PixKeyType *string             `json:"tipo_chave_pix" form:"tipo_chave_pix"`
	MatchPrice decimal.NullDecimal `json:"valor_partida" form:"valor_partida" validate:"ValidateMatchPrice"`
	PhotoURL   *string             `json:"foto_url" form:"foto_url"`
	Bio        *string             `json:"bio" form:"bio"`
}

func (p ProfileParams) Messages() map[string]string {
	return VaildateMessage("resource.user")
}

func (p ProfileParams) ValidateMatchPrice(val decimal.NullDecimal) bool {
	return positiveOrEmpty(val)
}

func (p ProfileParams) ToModel() models.ProfileParams {
	return models.ProfileParams{
		Name:       p.Name,
		Phone:      p.Phone,
		City:       p.City,
		PixKey:     p.PixKey,
		PixKeyType: p.PixKeyType,
		MatchPrice: p.MatchPrice,
		PhotoURL:   p.PhotoURL,
		Bio:        p.Bio,
	}
}

type PushTokenParams struct {
	Token    string `json:"token" form:"token" validate:"required"`
	Platform string `json:"plataforma" form:"plataforma" validate:"in:ios,android,web"`
}

func (p PushTokenParams) Messages() map[string]string {
	return VaildateMessage("resource.push_token")
}

type CreateConvocationParams struct {
	GoalkeeperID    uint64              `json:"goleiro_id" form:"goleiro_id" validate:"required"`
	VenueID         uint64              `json:"local_id" form:"local_id"`
	GameAt          time.Time           `json:"data_jogo" form:"data_jogo" validate:"ValidateGameAt"`
	DurationMinutes int                 `json:"duracao_minutos" form:"duracao_minutos" validate:"ValidateDuration"`
	Amount          decimal.NullDecimal `json:"valor" form:"valor" validate:"ValidateAmount"`
	Notes           string              `json:"observacoes" form:"observacoes" validate:"maxLen:500"`
}

func (p CreateConvocationParams) Messages() map[string]string {
	ms := VaildateMessage("convocation")
	ms["ValidateGameAt"] = "convocation.invalid_game_time"
	ms["ValidateAmount"] = "convocation.non_positive_amount"

	return ms
}

func (p CreateConvocationParams) ValidateGameAt(val time.Time) bool {
	return !val.IsZero()
}

func (p CreateConvocationParams) ValidateDuration(val int) bool {
	return val >= 0 && val <= 24*60
}

func (p CreateConvocationParams) ValidateAmount(val decimal.NullDecimal) bool {
	return positiveOrEmpty(val)
}

func (p CreateConvocationParams) ToModel() models.CreateConvocationParams {
	return models.CreateConvocationParams{
		GoalkeeperID:    p.GoalkeeperID,
		VenueID:         p.VenueID,
		GameAt:          p.GameAt,
		DurationMinutes: p.DurationMinutes,
		Amount:          p.Amount,
		Notes:           p.Notes,
	}
}

type RechargeParams struct {
	Amount         decimal.Decimal `json:"valor_reais" form:"valor_reais" validate:"ValidateAmount"`
	IdempotencyKey string          `json:"chave_idempotencia" form:"chave_idempotencia" validate:"maxLen:64"`
}

func (p RechargeParams) Messages() map[string]string {
	ms := VaildateMessage("account.recharge")
	ms["ValidateAmount"] = "account.recharge.non_positive_amount"

	return ms
}

func (p RechargeParams) ValidateAmount(val decimal.Decimal) bool {
	return val.IsPositive()
}

type WithdrawalParams struct {
	Amount     decimal.Decimal  `json:"quantidade_coins" form:"quantidade_coins" validate:"ValidateAmount"`
	PixKey     string           `json:"chave_pix" form:"chave_pix"`
	PixKeyType types.PixKeyType `json:"tipo_chave" form:"tipo_chave" validate:"ValidatePixKeyType"`
}

func (p WithdrawalParams) Messages() map[string]string {
	ms := VaildateMessage("account.withdraw")
	ms["ValidateAmount"] = "account.withdraw.non_positive_amount"

	return ms
}

func (p WithdrawalParams) ValidateAmount(val decimal.Decimal) bool {
	return val.IsPositive()
}

func (p WithdrawalParams) ValidatePixKeyType(val types.PixKeyType) bool {
	return validPixKeyType(val)
}

func (p WithdrawalParams) ToModel() models.WithdrawalParams {
	return models.WithdrawalParams{
		Amount:     p.Amount,
		PixKey:     p.PixKey,
		PixKeyType: p.PixKeyType,
	}
}

type RatingItem struct {
	CategoryID uint64 `json:"categoria_id"`
	Score      int    `json:"nota"`
	Comment    string `json:"comentario"`
}

type RatingParams struct {
	Ratings []RatingItem `json:"avaliacoes" form:"avaliacoes" validate:"ValidateRatings"`
}

func (p RatingParams) Messages() map[string]string {
	ms := VaildateMessage("rating")
	ms["ValidateRatings"] = "rating.invalid_score"

	return ms
}

func (p RatingParams) ValidateRatings(val []RatingItem) bool {
	if len(val) == 0 {
		return false
	}
	for _, item := range val {
		if item.Score < models.MinScore || item.Score > models.MaxScore {
			return false
		}
	}

	return true
}

func (p RatingParams) ToModel() []models.RatingInput {
	inputs := make([]models.RatingInput, 0, len(p.Ratings))
	for _, item := range p.Ratings {
		inputs = append(inputs, models.RatingInput{
			CategoryID: item.CategoryID,
			Score:      item.Score,
			Comment:    item.Comment,
		})
	}

	return inputs
}

type TicketParams struct {
	Subject string `json:"assunto" form:"assunto" validate:"required|maxLen:200"`
	Content string `json:"mensagem" form:"mensagem" validate:"required"`
}

func (p TicketParams) Messages() map[string]string {
	return VaildateMessage("support.ticket")
}

type MessageParams struct {
	Content string `json:"conteudo" form:"conteudo" validate:"required"`
}

func (p MessageParams) Messages() map[string]string {
	return VaildateMessage("support.message")
}

type RejectParams struct {
	Reason string `json:"motivo" form:"motivo" validate:"maxLen:500"`
}

func (p RejectParams) Messages() map[string]string {
	return VaildateMessage("admin.review")
}

type ReviewUserParams struct {
	Approve bool `json:"aprovar" form:"aprovar"`
}

type FeeParams struct {
	ConvocationRate decimal.NullDecimal `json:"taxa_convocacao" form:"taxa_convocacao" validate:"ValidateRate"`
	RechargeRate    decimal.NullDecimal `json:"taxa_recarga" form:"taxa_recarga" validate:"ValidateRate"`
	WithdrawalRate  decimal.NullDecimal `json:"taxa_saque" form:"taxa_saque" validate:"ValidateRate"`
	CoinsPerReal    decimal.NullDecimal `json:"coins_por_real" form:"coins_por_real" validate:"ValidatePositive"`
	MinWithdrawal   decimal.NullDecimal `json:"saque_minimo" form:"saque_minimo" validate:"ValidateNonNegative"`
	MinRecharge     decimal.NullDecimal `json:"recarga_minima" form:"recarga_minima" validate:"ValidateNonNegative"`
}

func (p FeeParams) Messages() map[string]string {
	ms := VaildateMessage("admin.fees")
	ms["ValidateRate"] = "admin.fees.invalid_{field}"
	ms["ValidatePositive"] = "admin.fees.invalid_{field}"
	ms["ValidateNonNegative"] = "admin.fees.invalid_{field}"

	return ms
}

func (p FeeParams) ValidateRate(val decimal.NullDecimal) bool {
	return !val.Valid || (!val.Decimal.IsNegative() && val.Decimal.LessThanOrEqual(decimal.NewFromInt(100)))
}

func (p FeeParams) ValidatePositive(val decimal.NullDecimal) bool {
	return positiveOrEmpty(val)
}

func (p FeeParams) ValidateNonNegative(val decimal.NullDecimal) bool {
	return !val.Valid || !val.Decimal.IsNegative()
}

func (p FeeParams) ToModel() models.FeeConfigParams {
	return models.FeeConfigParams{
		ConvocationRate: p.ConvocationRate,
		RechargeRate:    p.RechargeRate,
		WithdrawalRate:  p.WithdrawalRate,
		CoinsPerReal:    p.CoinsPerReal,
		MinWithdrawal:   p.MinWithdrawal,
		MinRecharge:     p.MinRecharge,
	}
}

type VenueParams struct {
	Name    *string `json:"nome" form:"nome"`
	Address *string `json:"endereco" form:"endereco"`
	City    *string `json:"cidade" form:"cidade"`
	Active  *bool   `json:"ativo" form:"ativo"`
}

func (p VenueParams) ToModel() models.VenueParams {
	return models.VenueParams{Name: p.Name, Address: p.Address, City: p.City, Active: p.Active}
}

type CategoryParams struct {
	Name        *string             `json:"nome" form:"nome"`
	Description *string             `json:"descricao" form:"descricao"`
	Target      *types.RatingTarget `json:"tipo" form:"tipo"`
	Active      *bool               `json:"ativa" form:"ativa"`
}

func (p CategoryParams) ToModel() models.RatingCategoryParams {
	return models.RatingCategoryParams{Name: p.Name, Description: p.Description, Target: p.Target, Active: p.Active}
}

type AppUpdateParams struct {
	Version     string `json:"versao" form:"versao" validate:"required|maxLen:32"`
	Title       string `json:"titulo" form:"titulo" validate:"required|maxLen:200"`
	Description string `json:"descricao" form:"descricao"`
	Mandatory   bool   `json:"obrigatoria" form:"obrigatoria"`
}

func (p AppUpdateParams) Messages() map[string]string {
	return VaildateMessage("admin.update")
}
