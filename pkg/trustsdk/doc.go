/*
Package trustsdk is a client for the trustgate HTTP API.

A Client covers the unauthenticated endpoints: health probes, capability
downloads and the payment webhook. A Session wraps a Client with an access
token minted elsewhere and covers the bearer endpoints.

	client := trustsdk.NewClient("http://localhost:8080")

	health, err := client.GetLiveness(ctx)

	session := client.NewSession(accessToken)
	me, err := session.Me(ctx)

	link, err := session.SignedURL(ctx, me.ID, 300)
	body, err := client.Download(ctx, link.URL)

Errors returned by the service are *APIError values and can be compared
with errors.Is against the predefined errors:

	if errors.Is(err, trustsdk.ErrInvalidCapability) {
		// expired or forged link
	}
*/
package trustsdk
