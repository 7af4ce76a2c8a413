// Package apifootball adapts the API-Football-style REST API to the
// common provider envelope. The upstream authenticates via a header
// key and wraps every payload in {"get","parameters","errors","results",
// "paging","response"}, with rich per-fixture sub-objects (fixture,
// league, teams, goals, score). Errors may arrive as a list or a map
// inside an HTTP 200.
package apifootball

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/SYNCODE-SLIIT/sports-analysis/internal/cache"
	"github.com/SYNCODE-SLIIT/sports-analysis/internal/providers"
	"github.com/SYNCODE-SLIIT/sports-analysis/internal/resolve"
	"github.com/SYNCODE-SLIIT/sports-analysis/pkg/fields"
	"github.com/SYNCODE-SLIIT/sports-analysis/pkg/models"
)

const (
	// ProviderName is the routing-policy key for this adapter.
	ProviderName = "apifootball"

	// DefaultBaseURL is the v3 API root.
	DefaultBaseURL = "https://v3.football.api-sports.io"

	listCacheTTL = time.Hour
)

// wellKnownLeagues maps names to API-Football league IDs.
var wellKnownLeagues = map[string]string{
	"premier league":   "39",
	"la liga":          "140",
	"serie a":          "135",
	"bundesliga":       "78",
	"ligue 1":          "61",
	"champions league": "2",
}

// Client is the API-Football adapter.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string

	leagues   *resolve.Resolver
	teams     *resolve.Resolver
	listCache *cache.TTLCache
}

// New creates the adapter.
func New(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
		listCache:  cache.NewTTLCache(),
	}
	c.leagues = resolve.New("league", c.searchLeagues, wellKnownLeagues)
	c.teams = resolve.New("team", c.searchTeams, nil)
	return c
}

// Name returns the provider key used in routing policy and traces.
func (c *Client) Name() string {
	return ProviderName
}

// Call executes one intent against API-Football.
func (c *Client) Call(ctx context.Context, intent models.Intent, args map[string]interface{}) *models.Response {
	switch intent {
	case models.IntentEventsList:
		return c.fixturesByDate(ctx, intent, args)
	case models.IntentEventGet:
		return c.fixtureByID(ctx, intent, args)
	case models.IntentLivescores:
		return c.liveFixtures(ctx, intent)
	case models.IntentTeamsList:
		return c.teamsList(ctx, intent, args)
	case models.IntentTeamGet:
		return c.teamGet(ctx, intent, args)
	case models.IntentPlayersList:
		return c.playersList(ctx, intent, args)
	case models.IntentH2H:
		return c.headToHead(ctx, intent, args)
	case models.IntentLeagueTable:
		return c.standings(ctx, intent, args)
	case models.IntentLeaguesList:
		return c.leaguesList(ctx, intent)
	case models.IntentCountriesList:
		return c.countriesList(ctx, intent)
	case models.IntentOddsList:
		return c.odds(ctx, intent, args)
	default:
		return models.Failure(intent, models.ErrUpstream,
			fmt.Sprintf("apifootball does not support intent %s", intent), nil)
	}
}

func (c *Client) fixturesByDate(ctx context.Context, intent models.Intent, args map[string]interface{}) *models.Response {
	date, ok := providers.StringArg(args, "date")
	if !ok {
		return models.Failure(intent, models.ErrMissingArg, "date is required", nil)
	}

	query := url.Values{"date": {date}}
	resp := models.Success(intent, nil)

	if leagueID, ok := providers.StringArg(args, "leagueId"); ok {
		query.Set("league", leagueID)
		query.Set("season", seasonFor(date))
	} else if leagueName, ok := providers.StringArg(args, "leagueName"); ok {
		leagueID, errInfo := c.leagues.Resolve(ctx, leagueName)
		if errInfo != nil {
			return models.FailureFrom(intent, errInfo)
		}
		resp.SetResolved("leagueId", leagueID)
		query.Set("league", leagueID)
		query.Set("season", seasonFor(date))
	}

	data, errInfo := c.get(ctx, "/fixtures", query)
	if errInfo != nil {
		return models.FailureFrom(intent, errInfo)
	}
	resp.Data = data
	return resp
}

func (c *Client) fixtureByID(ctx context.Context, intent models.Intent, args map[string]interface{}) *models.Response {
	eventID, ok := providers.StringArg(args, "eventId", "id")
	if !ok {
		return models.Failure(intent, models.ErrMissingArg, "eventId is required", nil)
	}

	data, errInfo := c.get(ctx, "/fixtures", url.Values{"id": {eventID}})
	if errInfo != nil {
		return models.FailureFrom(intent, errInfo)
	}
	return models.Success(intent, data)
}

func (c *Client) liveFixtures(ctx context.Context, intent models.Intent) *models.Response {
	data, errInfo := c.get(ctx, "/fixtures", url.Values{"live": {"all"}})
	if errInfo != nil {
		return models.FailureFrom(intent, errInfo)
	}
	return models.Success(intent, data)
}

func (c *Client) teamsList(ctx context.Context, intent models.Intent, args map[string]interface{}) *models.Response {
	resp := models.Success(intent, nil)

	leagueID, ok := providers.StringArg(args, "leagueId")
	if !ok {
		leagueName, named := providers.StringArg(args, "leagueName")
		if !named {
			return models.Failure(intent, models.ErrMissingArg, "leagueId or leagueName is required", nil)
		}
		resolved, errInfo := c.leagues.Resolve(ctx, leagueName)
		if errInfo != nil {
			return models.FailureFrom(intent, errInfo)
		}
		resp.SetResolved("leagueId", resolved)
		leagueID = resolved
	}

	query := url.Values{"league": {leagueID}, "season": {currentSeason()}}
	if season, ok := providers.StringArg(args, "season"); ok {
		query.Set("season", season)
	}

	data, errInfo := c.get(ctx, "/teams", query)
	if errInfo != nil {
		return models.FailureFrom(intent, errInfo)
	}
	resp.Data = data
	return resp
}

func (c *Client) teamGet(ctx context.Context, intent models.Intent, args map[string]interface{}) *models.Response {
	if teamID, ok := providers.StringArg(args, "teamId"); ok {
		data, errInfo := c.get(ctx, "/teams", url.Values{"id": {teamID}})
		if errInfo != nil {
			return models.FailureFrom(intent, errInfo)
		}
		return models.Success(intent, data)
	}

	teamName, ok := providers.StringArg(args, "teamName")
	if !ok {
		return models.Failure(intent, models.ErrMissingArg, "teamId or teamName is required", nil)
	}
	data, errInfo := c.get(ctx, "/teams", url.Values{"search": {teamName}})
	if errInfo != nil {
		return models.FailureFrom(intent, errInfo)
	}
	return models.Success(intent, data)
}

func (c *Client) playersList(ctx context.Context, intent models.Intent, args map[string]interface{}) *models.Response {
	resp := models.Success(intent, nil)

	teamID, ok := providers.StringArg(args, "teamId")
	if !ok {
		teamName, named := providers.StringArg(args, "teamName")
		if !named {
			return models.Failure(intent, models.ErrMissingArg, "teamId or teamName is required", nil)
		}
		resolved, errInfo := c.teams.Resolve(ctx, teamName)
		if errInfo != nil {
			return models.FailureFrom(intent, errInfo)
		}
		resp.SetResolved("teamId", resolved)
		teamID = resolved
	}

	query := url.Values{"team": {teamID}, "season": {currentSeason()}}
	if season, ok := providers.StringArg(args, "season"); ok {
		query.Set("season", season)
	}

	data, errInfo := c.get(ctx, "/players", query)
	if errInfo != nil {
		return models.FailureFrom(intent, errInfo)
	}
	resp.Data = data
	return resp
}

// headToHead composes the upstream's "{idA}-{idB}" compound parameter,
// resolving names independently when IDs are absent.
func (c *Client) headToHead(ctx context.Context, intent models.Intent, args map[string]interface{}) *models.Response {
	resp := models.Success(intent, nil)

	idA, okA := providers.StringArg(args, "teamAId", "firstTeamId")
	idB, okB := providers.StringArg(args, "teamBId", "secondTeamId")

	if !okA || !okB {
		nameA, namedA := providers.StringArg(args, "teamA", "teamAName")
		nameB, namedB := providers.StringArg(args, "teamB", "teamBName")
		if !namedA || !namedB {
			return models.Failure(intent, models.ErrMissingArg,
				"h2h requires two team IDs or two team names", nil)
		}

		resolvedA, errInfo := c.teams.Resolve(ctx, nameA)
		if errInfo != nil {
			return models.FailureFrom(intent, errInfo)
		}
		resolvedB, errInfo := c.teams.Resolve(ctx, nameB)
		if errInfo != nil {
			return models.FailureFrom(intent, errInfo)
		}
		idA, idB = resolvedA, resolvedB
		resp.SetResolved("teamAId", idA)
		resp.SetResolved("teamBId", idB)
	}

	compound := fmt.Sprintf("%s-%s", idA, idB)
	resp.SetResolved("h2h", compound)

	data, errInfo := c.get(ctx, "/fixtures/headtohead", url.Values{"h2h": {compound}})
	if errInfo != nil {
		return models.FailureFrom(intent, errInfo)
	}
	resp.Data = data
	return resp
}

func (c *Client) standings(ctx context.Context, intent models.Intent, args map[string]interface{}) *models.Response {
	resp := models.Success(intent, nil)

	leagueID, ok := providers.StringArg(args, "leagueId")
	if !ok {
		leagueName, named := providers.StringArg(args, "leagueName")
		if !named {
			return models.Failure(intent, models.ErrMissingArg, "leagueId or leagueName is required", nil)
		}
		resolved, errInfo := c.leagues.Resolve(ctx, leagueName)
		if errInfo != nil {
			return models.FailureFrom(intent, errInfo)
		}
		resp.SetResolved("leagueId", resolved)
		leagueID = resolved
	}

	query := url.Values{"league": {leagueID}, "season": {currentSeason()}}
	if season, ok := providers.StringArg(args, "season"); ok {
		query.Set("season", season)
	}

	data, errInfo := c.get(ctx, "/standings", query)
	if errInfo != nil {
		return models.FailureFrom(intent, errInfo)
	}
	resp.Data = data
	return resp
}

func (c *Client) leaguesList(ctx context.Context, intent models.Intent) *models.Response {
	data, errInfo := c.cachedGet(ctx, "/leagues")
	if errInfo != nil {
		return models.FailureFrom(intent, errInfo)
	}
	return models.Success(intent, data)
}

func (c *Client) countriesList(ctx context.Context, intent models.Intent) *models.Response {
	data, errInfo := c.cachedGet(ctx, "/countries")
	if errInfo != nil {
		return models.FailureFrom(intent, errInfo)
	}
	return models.Success(intent, data)
}

func (c *Client) odds(ctx context.Context, intent models.Intent, args map[string]interface{}) *models.Response {
	fixtureID, ok := providers.StringArg(args, "eventId", "matchId", "fixtureId")
	if !ok {
		return models.Failure(intent, models.ErrMissingArg, "eventId is required", nil)
	}

	data, errInfo := c.get(ctx, "/odds", url.Values{"fixture": {fixtureID}})
	if errInfo != nil {
		return models.FailureFrom(intent, errInfo)
	}
	return models.Success(intent, data)
}

// searchLeagues backs the league resolver via /leagues?search=.
func (c *Client) searchLeagues(ctx context.Context, name string) ([]resolve.Candidate, error) {
	data, errInfo := c.get(ctx, "/leagues", url.Values{"search": {name}})
	if errInfo != nil {
		return nil, fmt.Errorf("%s: %s", errInfo.Code, errInfo.Message)
	}

	response, _ := data["response"].([]interface{})
	candidates := make([]resolve.Candidate, 0, len(response))
	for _, raw := range response {
		entry, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		league, _ := entry["league"].(map[string]interface{})
		if league == nil {
			continue
		}
		id, name := idAndName(league)
		if id == "" || name == "" {
			continue
		}
		candidates = append(candidates, resolve.Candidate{ID: id, Name: name})
	}
	return candidates, nil
}

// searchTeams backs the team resolver via /teams?search=.
func (c *Client) searchTeams(ctx context.Context, name string) ([]resolve.Candidate, error) {
	data, errInfo := c.get(ctx, "/teams", url.Values{"search": {name}})
	if errInfo != nil {
		return nil, fmt.Errorf("%s: %s", errInfo.Code, errInfo.Message)
	}

	response, _ := data["response"].([]interface{})
	candidates := make([]resolve.Candidate, 0, len(response))
	for _, raw := range response {
		entry, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		team, _ := entry["team"].(map[string]interface{})
		if team == nil {
			continue
		}
		id, name := idAndName(team)
		if id == "" || name == "" {
			continue
		}
		candidates = append(candidates, resolve.Candidate{ID: id, Name: name})
	}
	return candidates, nil
}

func idAndName(record map[string]interface{}) (string, string) {
	id := ""
	if value, ok := record["id"]; ok && value != nil {
		id = fields.AsString(value)
	}
	name, _ := record["name"].(string)
	return id, name
}

// cachedGet runs a rarely-changing list endpoint through the 1h cache.
func (c *Client) cachedGet(ctx context.Context, path string) (map[string]interface{}, *models.ErrorInfo) {
	if cached, fresh := c.listCache.Get(path); fresh {
		return cached.(map[string]interface{}), nil
	}
	data, errInfo := c.get(ctx, path, nil)
	if errInfo != nil {
		return nil, errInfo
	}
	c.listCache.Put(path, data, listCacheTTL)
	return data, nil
}

// get performs one GET with the header API key and decodes the standard
// envelope. A non-empty "errors" field is a provider-native failure even
// under HTTP 200.
func (c *Client) get(ctx context.Context, path string, query url.Values) (map[string]interface{}, *models.ErrorInfo) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &models.ErrorInfo{Code: models.ErrInternal, Message: fmt.Sprintf("creating request: %v", err)}
	}
	req.Header.Set("x-apisports-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &models.ErrorInfo{Code: models.ErrUpstream, Message: fmt.Sprintf("calling apifootball: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &models.ErrorInfo{
			Code:    models.ErrUpstream,
			Message: fmt.Sprintf("apifootball error: status=%d, body=%s", resp.StatusCode, string(body)),
		}
	}

	var data map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, &models.ErrorInfo{Code: models.ErrUpstream, Message: fmt.Sprintf("decoding apifootball response: %v", err)}
	}

	if msg, failed := envelopeErrors(data["errors"]); failed {
		return nil, &models.ErrorInfo{
			Code:    models.ErrUpstream,
			Message: fmt.Sprintf("apifootball reported errors: %s", msg),
		}
	}
	return data, nil
}

// envelopeErrors reports whether the "errors" field carries anything.
// The upstream uses [] when clean, and either a map or a list when not.
func envelopeErrors(value interface{}) (string, bool) {
	switch errs := value.(type) {
	case []interface{}:
		if len(errs) == 0 {
			return "", false
		}
		return fmt.Sprintf("%v", errs), true
	case map[string]interface{}:
		if len(errs) == 0 {
			return "", false
		}
		return fmt.Sprintf("%v", errs), true
	case string:
		if errs == "" {
			return "", false
		}
		return errs, true
	}
	return "", false
}

// seasonFor derives the season year from a fixture date: a European
// season is labeled by its starting year, rolling over in July.
func seasonFor(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return currentSeason()
	}
	year := t.Year()
	if t.Month() < time.July {
		year--
	}
	return strconv.Itoa(year)
}

func currentSeason() string {
	return seasonFor(time.Now().Format("2006-01-02"))
}
