// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type AuthorizationError GenericError
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type ResourceError GenericError
type StateError GenericError
type ValueError GenericError

// ledger errors - the text is the reason string seen by callers
var (
	AlreadyClosed         = StateError("Job is already closed.")
	AlreadyRegistered     = ExistsError("User is already registered.")
	AlreadyReleased       = StateError("Milestone already released.")
	AmountOverflow        = ValueError("Amount overflows balance.")
	CustodyAccount        = AuthorizationError("Only milestones can move tokens into custody.")
	FieldTooLong          = ValueError("Field is too long.")
	FreelancersCannotPost = AuthorizationError("Freelancers cannot post jobs.")
	InsufficientAllowance = ResourceError("ERC20: insufficient allowance")
	InsufficientBalance   = ResourceError("ERC20: transfer amount exceeds balance")
	JobNotOpen            = StateError("Job is not open.")
	NoFreelancerSelected  = StateError("No freelancer selected for this job.")
	NotAnApplicant        = NotFoundError("Address has not applied for this job.")
	NotClient             = AuthorizationError("Only the job client can do this.")
	NotFreelancer         = AuthorizationError("Only freelancers can apply.")
	NotMinter             = AuthorizationError("Only the token minter can mint.")
	NotRegistered         = NotFoundError("User is not registered.")
	TransferFailed        = ResourceError("Token transfer failed.")
	UnknownJob            = NotFoundError("Job does not exist.")
	UnknownMilestone      = NotFoundError("Invalid milestone ID.")
	ZeroAddress           = ValueError("ERC20: transfer to the zero address")
	ZeroAmount            = ValueError("Amount must be greater than zero.")
)

// infrastructure errors - keep in alphabetic order
var (
	AlreadyInitialised           = ExistsError("already initialised")
	CertificateFileAlreadyExists = ExistsError("certificate file already exists")
	CryptoFailed                 = ProcessError("crypto failed")
	DatabaseIsNotSet             = ProcessError("database is not set")
	IdentityNameAlreadyExists    = ExistsError("identity name already exists")
	IdentityNameNotFound         = NotFoundError("identity name not found")
	IncompatibleOptions          = InvalidError("incompatible options")
	InvalidAddress               = InvalidError("invalid account address")
	InvalidConfiguration         = InvalidError("configuration must return a table")
	InvalidCount                 = InvalidError("invalid count")
	InvalidCursor                = InvalidError("invalid cursor")
	InvalidIpAddress             = InvalidError("invalid IP address")
	InvalidItem                  = InvalidError("invalid item")
	InvalidPasswordLength        = InvalidError("password must be at least 8 characters")
	InvalidPublicKey             = InvalidError("invalid public key")
	InvalidRole                  = InvalidError("invalid role")
	InvalidSignature             = InvalidError("invalid signature")
	InvalidTimestamp             = InvalidError("request timestamp outside allowed window")
	KeyFileAlreadyExists         = ExistsError("key file already exists")
	MissingParameters            = InvalidError("missing parameters")
	NotInitialised               = NotFoundError("not initialised")
	NotPrivateKey                = InvalidError("not private key")
	NotTransactionPack           = InvalidError("not a packed record")
	PasswordMismatch             = InvalidError("passwords do not match")
	RateLimiting                 = InvalidError("rate limiting")
	ReplayedRequest              = ExistsError("request already processed")
	TransactionInUse             = ProcessError("transaction already in use")
	WrongPassword                = InvalidError("wrong password")
)

// Error - the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e AuthorizationError) Error() string { return string(e) }
func (e ExistsError) Error() string        { return string(e) }
func (e InvalidError) Error() string       { return string(e) }
func (e NotFoundError) Error() string      { return string(e) }
func (e ProcessError) Error() string       { return string(e) }
func (e ResourceError) Error() string      { return string(e) }
func (e StateError) Error() string         { return string(e) }
func (e ValueError) Error() string         { return string(e) }

// determine the class of an error
func IsErrAuthorization(e error) bool { _, ok := e.(AuthorizationError); return ok }
func IsErrExists(e error) bool        { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool       { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool      { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool       { _, ok := e.(ProcessError); return ok }
func IsErrResource(e error) bool      { _, ok := e.(ResourceError); return ok }
func IsErrState(e error) bool         { _, ok := e.(StateError); return ok }
func IsErrValue(e error) bool         { _, ok := e.(ValueError); return ok }
