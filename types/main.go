package types

type UserType string

const (
	UserTypeOrganizer  UserType = "organizador"
	UserTypeGoalkeeper UserType = "goleiro"
	UserTypeAdmin      UserType = "admin"
)

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pendente"
	ApprovalApproved ApprovalStatus = "aprovado"
	ApprovalRejected ApprovalStatus = "rejeitado"
)

type ConvocationStatus string

const (
	ConvocationPending   ConvocationStatus = "pendente"
	ConvocationAccepted  ConvocationStatus = "aceito"
	ConvocationDeclined  ConvocationStatus = "recusado"
	ConvocationLost      ConvocationStatus = "perdida"
	ConvocationCancelled ConvocationStatus = "cancelada"
	ConvocationCompleted ConvocationStatus = "concluida"
)

type TicketStatus string

const (
	TicketOpen       TicketStatus = "aberto"
	TicketInProgress TicketStatus = "em_atendimento"
	TicketClosed     TicketStatus = "fechado"
)

// RatingTarget tells which side of a convocation is being rated.
type RatingTarget string

const (
	RatingTargetGoalkeeper RatingTarget = "goleiro"
	RatingTargetOrganizer  RatingTarget = "organizador"
)

type MovementKind string

const (
	MovementRecharge          MovementKind = "recarga"
	MovementWithdrawalLock    MovementKind = "saque_retido"
	MovementWithdrawalPaid    MovementKind = "saque_pago"
	MovementWithdrawalRefund  MovementKind = "saque_devolvido"
	MovementConvocationLock   MovementKind = "convocacao_retida"
	MovementConvocationRefund MovementKind = "convocacao_devolvida"
	MovementConvocationPaid   MovementKind = "convocacao_paga"
	MovementConvocationEarn   MovementKind = "convocacao_recebida"
	MovementPlatformFee       MovementKind = "taxa_plataforma"
)

type PixKeyType string

const (
	PixKeyCPF    PixKeyType = "cpf"
	PixKeyCNPJ   PixKeyType = "cnpj"
	PixKeyEmail  PixKeyType = "email"
	PixKeyPhone  PixKeyType = "telefone"
	PixKeyRandom PixKeyType = "aleatoria"
)

type OrderBy = string

var (
	OrderByAsc  OrderBy = "asc"
	OrderByDesc OrderBy = "desc"
)
