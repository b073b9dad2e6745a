// SPDX-License-Identifier: GPL-3.0-only

package handlers

// swagger:model SignupRequest
type SignupRequest struct {
	// User's password
	// required: true
	Password string `json:"password" example:"MySecretPassword@123"`
	// User's email address
	// required: true
	Email string `json:"email" example:"agency@example.com"`
	// Optional agency or studio name
	CompanyName *string `json:"company_name" example:"Acme Studio"`
	// Optional phone number in E.164 format
	PhoneNumber *string `json:"phone_number" example:"+14155552671"`
}

// swagger:model SignupResponse
type SignupResponse struct {
	// Message indicating successful operation
	Message string `json:"message" example:"Signup successful"`
}

// swagger:model LoginRequest
type LoginRequest struct {
	// User's email address
	Email string `json:"email" example:"agency@example.com"`
	// User's password
	Password string `json:"password" example:"MySecretPassword@123"`
}

// swagger:model LoginResponse
type LoginResponse struct {
	// Authentication session token
	// Should be used in the Authorization header as a Bearer token.
	SessionToken string `json:"session_token" example:"sample_session_token"`
	// Message indicating successful operation
	Message string `json:"message" example:"Login successful"`
}

// swagger:model GenericResponse
type GenericResponse struct {
	// Message indicating the result of the operation
	Message string `json:"message"`
}

// swagger:model PaginationDetails
type PaginationDetails struct {
	// Current page number
	Page int `json:"page"`
	// Page size
	PageSize int `json:"page_size"`
	// Total number of items
	Total int64 `json:"total"`
	// Total number of pages
	TotalPages int `json:"total_pages"`
}

// swagger:model CreateAPIKeyRequest
type CreateAPIKeyRequest struct {
	// Name of the API key
	Name string `json:"name" example:"My API Key"`
	// Description of the API key
	Description *string `json:"description" example:"This key is used for accessing the WorkSpan API."`
	// Expiration date for the API key (optional)
	ExpiresAt *string `json:"expires_at" example:"2027-12-31"`
}

// swagger:model CreateAPIKeyResponse
type CreateAPIKeyResponse struct {
	// API key created
	APIKey string `json:"api_key" example:"ak_jkdfkjdfkdfjkdlklklkllklklklklklklklklklklkl"`
	// Key ID of the created API key
	KeyID string `json:"key_id" example:"ak_jkdfkjdfkdfjkd"`
	// Name of the API key
	Name string `json:"name" example:"My API Key"`
	// Description of the API key
	Description *string `json:"description" example:"This key is used for accessing the WorkSpan API."`
	// Timestamp of when the API key was created
	CreatedAt string `json:"created_at" example:"2026-01-01T12:00:00Z"`
	// Expiration date for the API key
	ExpiresAt *string `json:"expires_at" example:"2027-12-31"`
	// Message indicating successful creation
	Message string `json:"message" example:"API key created successfully"`
}

// swagger:model APIKeyDetails
type APIKeyDetails struct {
	// Key ID of the API key
	KeyID string `json:"key_id" example:"ak_jkdfkjdfkdfjkd"`
	// Name of the API key
	Name string `json:"name" example:"My API Key"`
	// Description of the API key
	Description *string `json:"description" example:"This key is used for accessing the WorkSpan API."`
	// Timestamp of when the API key was created
	CreatedAt string `json:"created_at" example:"2026-01-01T12:00:00Z"`
	// Last used timestamp of the API key
	LastUsedAt *string `json:"last_used_at" example:"2026-01-01T12:00:00Z"`
	// Expiration date for the API key
	ExpiresAt *string `json:"expires_at" example:"2027-12-31"`
}

// swagger:model APIKeyListResponse
type APIKeyListResponse struct {
	// List of API keys
	Data []APIKeyDetails `json:"data"`
	// Pagination details
	Pagination PaginationDetails `json:"pagination"`
	// Message indicating successful retrieval
	Message string `json:"message" example:"API keys retrieved successfully"`
}

// swagger:model CreateMilestoneRequest
type CreateMilestoneRequest struct {
	// Title of the milestone
	// required: true
	Title string `json:"title" example:"Homepage design"`
	// Description of the milestone
	Description *string `json:"description" example:"Wireframes plus two visual directions."`
	// Price in cents
	// required: true
	PriceCents int64 `json:"price_cents" example:"250000"`
	// Expected duration in days
	// required: true
	DurationDays uint `json:"duration_days" example:"14"`
	// Number of revisions included for free
	FreeRevisions uint `json:"free_revisions" example:"2"`
	// Surcharge rate per paid revision, percent of current milestone price
	RevisionRatePct uint `json:"revision_rate_pct" example:"10"`
}

// swagger:model CreateProjectRequest
type CreateProjectRequest struct {
	// Title of the project
	// required: true
	Title string `json:"title" example:"Website redesign"`
	// Description of the project
	Description *string `json:"description" example:"Full redesign of the marketing site."`
	// Total project budget in cents; milestone prices may never exceed it
	// required: true
	PriceCents int64 `json:"price_cents" example:"1000000"`
	// Total project duration in days; milestone durations may never exceed it
	// required: true
	DurationDays uint `json:"duration_days" example:"60"`
	// Client's display name
	// required: true
	ClientName string `json:"client_name" example:"Jamie Rivers"`
	// Client's email address, receives the portal invite
	// required: true
	ClientEmail string `json:"client_email" example:"jamie@example.com"`
	// Client's phone number in E.164 format
	ClientPhone *string `json:"client_phone" example:"+14155552671"`
	// Initial milestones, validated against the budget and duration ceilings
	Milestones []CreateMilestoneRequest `json:"milestones"`
}

// swagger:model MilestoneDetails
type MilestoneDetails struct {
	// ID of the milestone
	MilestoneID string `json:"milestone_id" example:"mls_jkdfkjdfkdfjkd"`
	// Title of the milestone
	Title string `json:"title" example:"Homepage design"`
	// Description of the milestone
	Description *string `json:"description" example:"Wireframes plus two visual directions."`
	// Current price in cents, grows with paid revisions
	PriceCents int64 `json:"price_cents" example:"250000"`
	// Expected duration in days
	DurationDays uint `json:"duration_days" example:"14"`
	// Number of revisions included for free
	FreeRevisions uint `json:"free_revisions" example:"2"`
	// Number of revisions consumed so far
	UsedRevisions uint `json:"used_revisions" example:"1"`
	// Surcharge rate per paid revision
	RevisionRatePct uint `json:"revision_rate_pct" example:"10"`
	// Current lifecycle status
	Status string `json:"status" example:"in_progress"`
	// Whether the milestone is archived (true once approved)
	IsArchived bool `json:"is_archived" example:"false"`
	// Notes attached to the latest submission
	SubmissionNotes *string `json:"submission_notes" example:"First pass, see attachments."`
	// Notes from the latest revision request
	RevisionNotes *string `json:"revision_notes" example:"The header is too crowded."`
	// Timestamp of the latest submission
	SubmittedAt *string `json:"submitted_at" example:"2026-01-10T12:00:00Z"`
	// Timestamp of approval
	ApprovedAt *string `json:"approved_at" example:"2026-01-12T12:00:00Z"`
	// Timestamp of when the milestone was created
	CreatedAt string `json:"created_at" example:"2026-01-01T12:00:00Z"`
	// Timestamp of when the milestone was last updated
	UpdatedAt string `json:"updated_at" example:"2026-01-10T12:00:00Z"`
}

// swagger:model ProjectDetails
type ProjectDetails struct {
	// ID of the project
	ProjectID string `json:"project_id" example:"proj_jkdfkjdfkdfjkd"`
	// Title of the project
	Title string `json:"title" example:"Website redesign"`
	// Description of the project
	Description *string `json:"description" example:"Full redesign of the marketing site."`
	// Current project price in cents, grows with paid revisions
	PriceCents int64 `json:"price_cents" example:"1000000"`
	// Total project duration in days
	DurationDays uint `json:"duration_days" example:"60"`
	// Current lifecycle status
	Status string `json:"status" example:"in_progress"`
	// Client's display name
	ClientName string `json:"client_name" example:"Jamie Rivers"`
	// Client's email address
	ClientEmail string `json:"client_email" example:"jamie@example.com"`
	// Client's phone number
	ClientPhone *string `json:"client_phone" example:"+14155552671"`
	// Portal token the client uses to access the project
	PortalToken string `json:"portal_token,omitempty" example:"prt_jkdfkjdfkdfjkd"`
	// Number of milestones, included in list responses
	MilestoneCount *int64 `json:"milestone_count,omitempty" example:"5"`
	// Milestones belonging to the project
	Milestones []MilestoneDetails `json:"milestones,omitempty"`
	// Timestamp of when the project was created
	CreatedAt string `json:"created_at" example:"2026-01-01T12:00:00Z"`
	// Timestamp of when the project was last updated
	UpdatedAt string `json:"updated_at" example:"2026-01-10T12:00:00Z"`
}

// swagger:model CreateProjectResponse
type CreateProjectResponse struct {
	// Created project
	Project ProjectDetails `json:"project"`
	// Message indicating successful creation
	Message string `json:"message" example:"Project created successfully"`
}

// swagger:model ProjectListResponse
type ProjectListResponse struct {
	// List of projects
	Data []ProjectDetails `json:"data"`
	// Pagination details
	Pagination PaginationDetails `json:"pagination"`
	// Message indicating successful retrieval
	Message string `json:"message" example:"Projects retrieved successfully"`
}

// swagger:model GetProjectResponse
type GetProjectResponse struct {
	// Project details with milestones
	Project ProjectDetails `json:"project"`
	// Deliverable files attached across the project's submissions
	Attachments []AttachmentDetails `json:"attachments"`
	// Message indicating successful retrieval
	Message string `json:"message" example:"Project retrieved successfully"`
}

// swagger:model UpdateMilestoneRequest
type UpdateMilestoneRequest struct {
	// New title; omit to leave unchanged
	Title *string `json:"title" example:"Homepage design v2"`
	// New description; omit to leave unchanged
	Description *string `json:"description" example:"Now including mobile breakpoints."`
	// New price in cents; omit to leave unchanged
	PriceCents *int64 `json:"price_cents" example:"300000"`
	// New duration in days; omit to leave unchanged
	DurationDays *uint `json:"duration_days" example:"21"`
	// New free revision allowance; omit to leave unchanged
	FreeRevisions *uint `json:"free_revisions" example:"3"`
	// New revision surcharge rate; omit to leave unchanged
	RevisionRatePct *uint `json:"revision_rate_pct" example:"15"`
}

// swagger:model UpdateMilestoneResponse
type UpdateMilestoneResponse struct {
	// Updated milestone
	Milestone MilestoneDetails `json:"milestone"`
	// Whether the request actually changed anything
	Changed bool `json:"changed" example:"true"`
	// Message indicating the result
	Message string `json:"message" example:"Milestone updated successfully"`
}

// swagger:model SubmitMilestoneAttachment
type SubmitMilestoneAttachment struct {
	// Display name of the uploaded file
	// required: true
	FileName string `json:"file_name" example:"homepage-v1.fig"`
	// URL of the uploaded file in object storage
	// required: true
	FileURL string `json:"file_url" example:"https://cdn.example.com/uploads/homepage-v1.fig"`
	// Notes attached to this file
	Notes *string `json:"notes" example:"Desktop only for now."`
}

// swagger:model SubmitMilestoneRequest
type SubmitMilestoneRequest struct {
	// Notes shown to the client alongside the submission
	Notes *string `json:"notes" example:"First pass, see attachments."`
	// Deliverable files attached to this submission
	Attachments []SubmitMilestoneAttachment `json:"attachments"`
}

// swagger:model MilestoneActionResponse
type MilestoneActionResponse struct {
	// Milestone after the action
	Milestone MilestoneDetails `json:"milestone"`
	// Message indicating the result
	Message string `json:"message"`
}

// swagger:model RejectMilestoneRequest
type RejectMilestoneRequest struct {
	// What the client wants changed; 1-1000 characters
	// required: true
	Notes string `json:"notes" example:"The header is too crowded, please simplify."`
}

// swagger:model RejectMilestoneResponse
type RejectMilestoneResponse struct {
	// Milestone after the rejection
	Milestone MilestoneDetails `json:"milestone"`
	// Whether this revision was covered by the free allowance
	HasFreeRevisions bool `json:"has_free_revisions" example:"false"`
	// Surcharge applied in cents, zero for free revisions
	RevisionChargeCents int64 `json:"revision_charge_cents" example:"25000"`
	// Milestone price in cents after the surcharge
	NewMilestonePriceCents int64 `json:"new_milestone_price_cents" example:"275000"`
	// Project price in cents after the surcharge
	NewProjectPriceCents int64 `json:"new_project_price_cents" example:"1025000"`
	// Number of submitted attachments flipped to rejected
	MediaAttachmentsUpdated int64 `json:"media_attachments_updated" example:"2"`
	// Message indicating the result
	Message string `json:"message" example:"Revision requested"`
}

// swagger:model ApproveMilestoneResponse
type ApproveMilestoneResponse struct {
	// Milestone after the approval
	Milestone MilestoneDetails `json:"milestone"`
	// Whether the approval moved the project to completed
	ProjectUpdated bool `json:"project_updated" example:"false"`
	// Non-cancelled milestone counts after the approval
	Counts MilestoneCountsDetails `json:"counts"`
	// Message indicating the result
	Message string `json:"message" example:"Milestone approved"`
}

// swagger:model MilestoneCountsDetails
type MilestoneCountsDetails struct {
	// Number of non-cancelled milestones
	Total int `json:"total" example:"5"`
	// Number of approved milestones
	Approved int `json:"approved" example:"3"`
	// Number of milestones not yet approved
	Pending int `json:"pending" example:"2"`
}

// swagger:model AttachmentDetails
type AttachmentDetails struct {
	// ID of the attachment
	AttachmentID string `json:"attachment_id" example:"att_jkdfkjdfkdfjkd"`
	// Display name of the file
	FileName string `json:"file_name" example:"homepage-v1.fig"`
	// URL of the file
	FileURL string `json:"file_url" example:"https://cdn.example.com/uploads/homepage-v1.fig"`
	// Review status of the file: submitted, approved or rejected
	SubmissionStatus string `json:"submission_status" example:"submitted"`
	// Notes attached to the file
	Notes *string `json:"notes" example:"Desktop only for now."`
	// Timestamp of when the attachment was created
	CreatedAt string `json:"created_at" example:"2026-01-10T12:00:00Z"`
}

// swagger:model PortalMilestoneDetails
type PortalMilestoneDetails struct {
	// Milestone details
	MilestoneDetails
	// Files attached to the milestone's submissions
	Attachments []AttachmentDetails `json:"attachments"`
}

// swagger:model PortalProjectResponse
type PortalProjectResponse struct {
	// Title of the project
	Title string `json:"title" example:"Website redesign"`
	// Description of the project
	Description *string `json:"description" example:"Full redesign of the marketing site."`
	// Current project price in cents
	PriceCents int64 `json:"price_cents" example:"1000000"`
	// Current lifecycle status
	Status string `json:"status" example:"in_progress"`
	// Agency or studio name
	AgencyName *string `json:"agency_name" example:"Acme Studio"`
	// Client's display name
	ClientName string `json:"client_name" example:"Jamie Rivers"`
	// Milestones with their attachments
	Milestones []PortalMilestoneDetails `json:"milestones"`
	// Message indicating successful retrieval
	Message string `json:"message" example:"Project retrieved successfully"`
}

// swagger:model CreateReviewRequest
type CreateReviewRequest struct {
	// Star rating, 1-5
	// required: true
	Stars int `json:"stars" example:"5"`
	// Free-form review text
	Body *string `json:"body" example:"Great work, fast turnaround."`
	// Milestone to review; omit for a project-level review
	MilestoneID *string `json:"milestone_id" example:"mls_jkdfkjdfkdfjkd"`
}

// swagger:model ReviewDetails
type ReviewDetails struct {
	// ID of the review
	ReviewID string `json:"review_id" example:"rev_jkdfkjdfkdfjkd"`
	// Star rating, 1-5
	Stars int `json:"stars" example:"5"`
	// Free-form review text
	Body *string `json:"body" example:"Great work, fast turnaround."`
	// Milestone the review is scoped to, null for project-level reviews
	MilestoneID *string `json:"milestone_id" example:"mls_jkdfkjdfkdfjkd"`
	// Timestamp of when the review was created
	CreatedAt string `json:"created_at" example:"2026-01-12T12:00:00Z"`
}

// swagger:model CreateReviewResponse
type CreateReviewResponse struct {
	// Created review
	Review ReviewDetails `json:"review"`
	// Message indicating successful creation
	Message string `json:"message" example:"Review submitted successfully"`
}

// swagger:model ReviewListResponse
type ReviewListResponse struct {
	// List of reviews
	Data []ReviewDetails `json:"data"`
	// Pagination details
	Pagination PaginationDetails `json:"pagination"`
	// Message indicating successful retrieval
	Message string `json:"message" example:"Reviews retrieved successfully"`
}

// swagger:model DashboardSummaryResponse
type DashboardSummaryResponse struct {
	// Total number of projects
	TotalProjects int64 `json:"total_projects" example:"12"`
	// Projects currently in progress
	ProjectsInProgress int64 `json:"projects_in_progress" example:"4"`
	// Projects completed
	ProjectsCompleted int64 `json:"projects_completed" example:"7"`
	// Milestones approved so far
	MilestonesApproved int64 `json:"milestones_approved" example:"9"`
	// Milestones waiting for client review
	MilestonesAwaitingReview int64 `json:"milestones_awaiting_review" example:"3"`
	// Milestones currently rejected and awaiting rework
	MilestonesInRevision int64 `json:"milestones_in_revision" example:"1"`
	// Sum of all project prices in cents
	TotalPriceCents int64 `json:"total_price_cents" example:"12500000"`
	// Sum of approved milestone prices in cents
	EarnedCents int64 `json:"earned_cents" example:"4500000"`
	// Sum of not-yet-approved milestone prices in cents
	OutstandingCents int64 `json:"outstanding_cents" example:"8000000"`
	// Revision surcharges billed across all milestones, in cents
	RevisionRevenueCents int64 `json:"revision_revenue_cents" example:"250000"`
	// Average star rating across all reviews, null when unreviewed
	AverageRating *float64 `json:"average_rating" example:"4.6"`
	// Message indicating successful retrieval
	Message string `json:"message" example:"Dashboard summary retrieved successfully"`
}

// swagger:model ActivityLogDetails
type ActivityLogDetails struct {
	// Event ID
	EID string `json:"eid" example:"550e8400-e29b-41d4-a716-446655440000"`
	// Event category
	Category string `json:"category" example:"MILESTONE"`
	// Event action
	Action string `json:"action" example:"milestone_approved"`
	// Who triggered the event: AGENCY or CLIENT
	Actor string `json:"actor" example:"CLIENT"`
	// Project the event concerns
	ProjectID *string `json:"project_id" example:"proj_jkdfkjdfkdfjkd"`
	// Milestone the event concerns
	MilestoneID *string `json:"milestone_id" example:"mls_jkdfkjdfkdfjkd"`
	// Event description
	Description *string `json:"description" example:"Client approved the milestone"`
	// Timestamp of when the event occurred
	OccurredAt string `json:"occurred_at" example:"2026-01-12T12:00:00Z"`
}

// swagger:model ActivityLogListResponse
type ActivityLogListResponse struct {
	// List of activity logs
	Data []ActivityLogDetails `json:"data"`
	// Pagination details
	Pagination PaginationDetails `json:"pagination"`
	// Message indicating successful retrieval
	Message string `json:"message" example:"Activity logs retrieved successfully"`
}

// swagger:model ActivityLogSummaryResponse
type ActivityLogSummaryResponse struct {
	// Total number of recorded events
	Total int64 `json:"total" example:"42"`
	// Event counts keyed by category
	Categories map[string]int64 `json:"categories"`
	// Timestamp of the most recent event, null when the trail is empty
	LastActivityAt *string `json:"last_activity_at" example:"2026-01-12T12:00:00Z"`
	// Message indicating successful retrieval
	Message string `json:"message" example:"Activity summary retrieved successfully"`
}
