package adapters

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"kycgate/internal/catalog"
	"kycgate/internal/platform/config"
	"kycgate/internal/vendors"
	"kycgate/internal/verify/models"
)

type AdapterSuite struct {
	suite.Suite
	ctx context.Context
}

func TestAdapterSuite(t *testing.T) {
	suite.Run(t, new(AdapterSuite))
}

func (s *AdapterSuite) SetupTest() {
	s.ctx = context.Background()
}

func input(fields map[string]string) models.Input {
	return models.Input{Fields: fields}
}

func (s *AdapterSuite) TestBuildRequest() {
	s.Run("karza pan payload carries consent flags", func() {
		a := newKarzaPan(nil, 0)
		payload, err := a.BuildRequest(input(map[string]string{"pan": "ABCDE1234F"}))
		s.Require().NoError(err)

		var got map[string]any
		s.Require().NoError(json.Unmarshal(payload, &got))
		s.Equal("ABCDE1234F", got["pan"])
		s.Equal("Y", got["consent"])
		s.Equal("Y", got["PANStatus"])
	})

	s.Run("surepass pan payload maps pan to id_number", func() {
		a := newSurepassPan(nil, 0)
		payload, err := a.BuildRequest(input(map[string]string{"pan": "ABCDE1234F"}))
		s.Require().NoError(err)
		s.JSONEq(`{"id_number":"ABCDE1234F"}`, string(payload))
	})

	s.Run("karza voter payload maps id_number to epicNo", func() {
		a := newKarzaVoter(nil, 0)
		payload, err := a.BuildRequest(input(map[string]string{"id_number": "XYZ1234567"}))
		s.Require().NoError(err)
		s.JSONEq(`{"epicNo":"XYZ1234567","consent":"Y"}`, string(payload))
	})

	s.Run("surepass bill payload maps provider to operator_code", func() {
		a := newSurepassBill(nil, 0)
		payload, err := a.BuildRequest(input(map[string]string{
			"consumer_id":      "1234567890",
			"service_provider": "MSEB",
		}))
		s.Require().NoError(err)
		s.JSONEq(`{"id_number":"1234567890","operator_code":"MSEB"}`, string(payload))
	})

	s.Run("karza name payload defaults type to individual", func() {
		a := newKarzaName(nil, 0)
		payload, err := a.BuildRequest(input(map[string]string{"name_1": "RAM", "name_2": "RAAM"}))
		s.Require().NoError(err)

		var got map[string]any
		s.Require().NoError(json.Unmarshal(payload, &got))
		s.Equal("RAM", got["name1"])
		s.Equal("individual", got["type"])
		s.Equal(true, got["allowPartialMatch"])
	})

	s.Run("driving dob is reformatted for surepass only", func() {
		karza := newKarzaDriving(nil, 0)
		surepass := newSurepassDriving(nil, 0)
		in := input(map[string]string{"license_no": "MH1220110012345", "dob": "15-06-1990"})

		kp, err := karza.BuildRequest(in)
		s.Require().NoError(err)
		var kGot map[string]any
		s.Require().NoError(json.Unmarshal(kp, &kGot))
		s.Equal("15-06-1990", kGot["dob"])

		sp, err := surepass.BuildRequest(in)
		s.Require().NoError(err)
		var sGot map[string]any
		s.Require().NoError(json.Unmarshal(sp, &sGot))
		s.Equal("1990-06-15", sGot["dob"])
	})
}

func (s *AdapterSuite) TestNormalize() {
	s.Run("karza pan reads the result envelope", func() {
		a := newKarzaPan(nil, 0)
		raw := json.RawMessage(`{
			"requestId": "req-1",
			"result": {
				"name": "RAVI KUMAR",
				"firstName": "RAVI",
				"lastName": "KUMAR",
				"gender": "male",
				"dob": "15-06-1990",
				"status": "VALID",
				"aadhaarLinked": true,
				"address": {"city": "Pune", "pinCode": "411001"}
			}
		}`)

		rec, ok := a.Normalize(raw, input(map[string]string{"pan": "ABCDE1234F"}))
		s.Require().True(ok)

		pan := rec.(*models.PanRecord)
		s.Equal("ABCDE1234F", pan.PanNumber)
		s.Equal("RAVI KUMAR", pan.FullName)
		s.Equal("req-1", pan.RequestID)
		s.Equal("Pune", pan.City)
		s.Require().NotNil(pan.AadhaarLinked)
		s.True(*pan.AadhaarLinked)
		s.Equal(VendorKarza, pan.Vendor)
	})

	s.Run("surepass pan splits full_name_split and normalizes gender", func() {
		a := newSurepassPan(nil, 0)
		raw := json.RawMessage(`{
			"data": {
				"full_name": "RAVI SHANKAR KUMAR",
				"full_name_split": ["RAVI", "SHANKAR", "KUMAR"],
				"gender": "M",
				"dob": "1990-06-15",
				"address": {"line_1": "12 MG Road", "zip": "411001"}
			}
		}`)

		rec, ok := a.Normalize(raw, input(map[string]string{"pan": "ABCDE1234F"}))
		s.Require().True(ok)

		pan := rec.(*models.PanRecord)
		s.Equal("RAVI", pan.FirstName)
		s.Equal("SHANKAR", pan.MiddleName)
		s.Equal("KUMAR", pan.LastName)
		s.Equal("male", pan.Gender)
		s.Equal("411001", pan.PinCode)
	})

	s.Run("empty result envelope is a miss", func() {
		a := newKarzaPan(nil, 0)
		_, ok := a.Normalize(json.RawMessage(`{"result": {}}`), input(map[string]string{"pan": "ABCDE1234F"}))
		s.False(ok)

		_, ok = a.Normalize(json.RawMessage(`{"statusCode": 102}`), input(map[string]string{"pan": "ABCDE1234F"}))
		s.False(ok)
	})

	s.Run("bill amount tolerates thousands separators", func() {
		a := newKarzaBill(nil, 0)
		raw := json.RawMessage(`{"result": {"consumer_number": "987654", "bill_amount": "1,234.50"}}`)

		rec, ok := a.Normalize(raw, input(map[string]string{"consumer_id": "987654"}))
		s.Require().True(ok)

		bill := rec.(*models.BillRecord)
		s.Require().NotNil(bill.BillAmount)
		s.InDelta(1234.50, *bill.BillAmount, 0.001)
	})

	s.Run("unparsable bill amount normalizes to absent", func() {
		a := newSurepassBill(nil, 0)
		raw := json.RawMessage(`{"data": {"customer_id": "987654", "bill_amount": "N/A"}}`)

		rec, ok := a.Normalize(raw, input(map[string]string{"consumer_id": "987654"}))
		s.Require().True(ok)
		s.Nil(rec.(*models.BillRecord).BillAmount)
	})

	s.Run("karza driving picks the permanent address and parses validity", func() {
		a := newKarzaDriving(nil, 0)
		raw := json.RawMessage(`{
			"requestId": "req-9",
			"result": {
				"dlNumber": "MH1220110012345",
				"name": "RAVI KUMAR",
				"status": "ACTIVE",
				"dob": "15-06-1990",
				"validity": {"nonTransport": "14-06-2030", "transport": ""},
				"address": [
					{"type": "present", "completeAddress": "Flat 1, Pune", "state": "MH"},
					{"type": "Permanent", "completeAddress": "House 2, Nashik", "state": "MH"}
				]
			}
		}`)

		rec, ok := a.Normalize(raw, input(map[string]string{"license_no": "MH1220110012345", "dob": "15-06-1990"}))
		s.Require().True(ok)

		dl := rec.(*models.DrivingLicenseRecord)
		s.Equal("House 2, Nashik", dl.Address)
		s.Equal("2030-06-14", dl.ValidTill)
		s.Equal("1990-06-15", dl.DOB)
		s.True(dl.IsVerified)
	})

	s.Run("name match keeps input names when vendor omits them", func() {
		a := newKarzaName(nil, 0)
		raw := json.RawMessage(`{"requestId": "req-2", "result": {"score": 0.92, "result": "match"}}`)

		rec, ok := a.Normalize(raw, input(map[string]string{"name_1": "RAM", "name_2": "RAAM"}))
		s.Require().True(ok)

		nm := rec.(*models.NameMatchRecord)
		s.Equal("RAM", nm.Name1)
		s.Require().NotNil(nm.MatchScore)
		s.InDelta(0.92, *nm.MatchScore, 0.001)
		s.Equal("RAM|RAAM", nm.NaturalKey())
	})
}

func (s *AdapterSuite) TestCall() {
	vendorRow := func(baseURL string) vendors.Vendor {
		return vendors.Vendor{ID: 1, Name: "karza", UATBaseURL: baseURL, UATKey: "test-key"}
	}

	s.Run("2xx with valid JSON returns the raw body", func() {
		var gotHeader string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotHeader = r.Header.Get("x-karza-key")
			s.Equal("/v3/pan-profile", r.URL.Path)
			_, _ = w.Write([]byte(`{"result":{"name":"X"}}`))
		}))
		defer srv.Close()

		a := newKarzaPan(srv.Client(), time.Second)
		res := a.Call(s.ctx, vendorRow(srv.URL), config.EnvUAT, json.RawMessage(`{}`))

		s.Require().False(res.Failed())
		s.JSONEq(`{"result":{"name":"X"}}`, string(res.Raw))
		s.Equal("test-key", gotHeader)
	})

	s.Run("surepass auth uses a bearer token", func() {
		var gotAuth string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			_, _ = w.Write([]byte(`{"data":{}}`))
		}))
		defer srv.Close()

		a := newSurepassPan(srv.Client(), time.Second)
		row := vendors.Vendor{ID: 2, Name: "surepass", UATBaseURL: srv.URL, UATKey: "tok-123"}
		a.Call(s.ctx, row, config.EnvUAT, json.RawMessage(`{}`))

		s.Equal("Bearer tok-123", gotAuth)
	})

	s.Run("non-2xx is tagged with status and body", func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`{"error":"upstream down"}`))
		}))
		defer srv.Close()

		a := newKarzaPan(srv.Client(), time.Second)
		res := a.Call(s.ctx, vendorRow(srv.URL), config.EnvUAT, json.RawMessage(`{}`))

		s.Require().True(res.Failed())
		s.Equal(http.StatusBadGateway, res.Transport.StatusCode)
		s.Contains(res.Transport.Body, "upstream down")
	})

	s.Run("invalid JSON from the vendor is tagged", func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("<html>gateway error</html>"))
		}))
		defer srv.Close()

		a := newKarzaPan(srv.Client(), time.Second)
		res := a.Call(s.ctx, vendorRow(srv.URL), config.EnvUAT, json.RawMessage(`{}`))

		s.Require().True(res.Failed())
		s.Contains(res.Transport.Message, "invalid JSON")
	})

	s.Run("timeout is tagged with no status code", func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			time.Sleep(200 * time.Millisecond)
			_, _ = w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		a := newKarzaPan(srv.Client(), time.Second)
		row := vendorRow(srv.URL)
		row.Timeout = 20 * time.Millisecond
		res := a.Call(s.ctx, row, config.EnvUAT, json.RawMessage(`{}`))

		s.Require().True(res.Failed())
		s.Zero(res.Transport.StatusCode)
	})

	s.Run("missing base URL is tagged without a call", func() {
		a := newKarzaPan(http.DefaultClient, time.Second)
		res := a.Call(s.ctx, vendors.Vendor{ID: 3, Name: "karza"}, config.EnvUAT, json.RawMessage(`{}`))

		s.Require().True(res.Failed())
		s.Contains(res.Transport.Message, "no base URL")
	})
}

func (s *AdapterSuite) TestRegistry() {
	s.Run("default registry covers both vendors for every service", func() {
		r, err := NewDefaultRegistry(nil, 30*time.Second)
		s.Require().NoError(err)

		services := []catalog.ServiceID{
			catalog.ServicePAN, catalog.ServiceBill, catalog.ServiceVoter,
			catalog.ServiceName, catalog.ServiceRC, catalog.ServiceDriving,
		}
		for _, svc := range services {
			_, ok := r.Lookup(svc, "karza")
			s.True(ok, "karza adapter missing for %s", svc)
			_, ok = r.Lookup(svc, "surepass")
			s.True(ok, "surepass adapter missing for %s", svc)
		}
	})

	s.Run("lookup is case-insensitive on vendor name", func() {
		r, err := NewDefaultRegistry(nil, 30*time.Second)
		s.Require().NoError(err)
		_, ok := r.Lookup(catalog.ServicePAN, "Karza")
		s.True(ok)
	})

	s.Run("duplicate registration fails", func() {
		r := NewRegistry()
		s.Require().NoError(r.Register(catalog.ServicePAN, newKarzaPan(nil, 0)))
		s.Error(r.Register(catalog.ServicePAN, newKarzaPan(nil, 0)))
	})

	s.Run("unknown vendor has no adapter", func() {
		r, err := NewDefaultRegistry(nil, 30*time.Second)
		s.Require().NoError(err)
		_, ok := r.Lookup(catalog.ServicePAN, "digitalocean")
		s.False(ok)
	})
}

func (s *AdapterSuite) TestConvertHelpers() {
	s.Run("normalizeDate handles both vendor formats", func() {
		s.Equal("1990-06-15", normalizeDate("15-06-1990"))
		s.Equal("1990-06-15", normalizeDate("1990-06-15"))
		s.Equal("June 15, 1990", normalizeDate("June 15, 1990"))
		s.Equal("", normalizeDate("  "))
	})

	s.Run("decimal strips separators and rejects garbage", func() {
		o := object{"a": "12,500.75", "b": "abc", "c": float64(42), "d": ""}
		s.InDelta(12500.75, *o.decimal("a"), 0.001)
		s.Nil(o.decimal("b"))
		s.InDelta(42, *o.decimal("c"), 0.001)
		s.Nil(o.decimal("d"))
		s.Nil(o.decimal("missing"))
	})

	s.Run("str coalesces alternate field names", func() {
		o := object{"emailId": "", "email": "x@y.z", "count": float64(3)}
		s.Equal("x@y.z", o.str("emailId", "email"))
		s.Equal("3", o.str("count"))
		s.Equal("", o.str("missing"))
	})
}
