// Package domain contains the core business entities and domain logic of
// the bot: the users it serves and the roast modes it can apply. It is
// independent of any specific infrastructure or delivery mechanism.
package domain
